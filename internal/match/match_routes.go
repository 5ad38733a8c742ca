package match

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jfarias-dev/ligauni/internal/middleware"
	"github.com/jfarias-dev/ligauni/internal/stream"
	"github.com/jfarias-dev/ligauni/internal/team"
)

// RegisterMatchRoutes wires the public match pages and the scorekeeper
// workflow.
func RegisterMatchRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	repo := NewMatchRepository(db)
	teams := team.NewTeamRepository(db)
	streams := stream.NewStreamRepository(db)
	statuses := MarkStatusProvider{}

	public := NewMatchController(repo, streams, statuses)
	matches := rg.Group("/matches")
	{
		matches.GET("", public.GetMatches)
		matches.GET("/:match_id", public.GetMatchByID)
	}

	scorer := NewPlanilleroController(repo, teams, statuses)
	planillero := rg.Group("/planillero")
	planillero.Use(middleware.RequireAuth(), middleware.RequirePlanillero())
	{
		planillero.GET("/matches", scorer.GetMyMatches)
		planillero.GET("/matches/:match_id/attendance", scorer.GetAttendance)
		planillero.POST("/matches/:match_id/attendance", scorer.RecordAttendance)
		planillero.POST("/matches/:match_id/events", scorer.RecordEvent)
		planillero.POST("/matches/:match_id/start", scorer.StartMatch)
		planillero.POST("/matches/:match_id/close", scorer.CloseMatch)
		planillero.POST("/matches/:match_id/validate", scorer.ValidateMatch)
	}
}

package team

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jfarias-dev/ligauni/internal/middleware"
)

// RegisterTeamRoutes wires the public team pages, the captain workflow and
// the join-request flow.
func RegisterTeamRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	repo := NewTeamRepository(db)
	controller := NewTeamController(repo)

	teams := rg.Group("/teams")
	{
		teams.GET("", controller.GetTeams)
		teams.GET("/:team_id", controller.GetTeamByID)

		teams.PUT("/:team_id", middleware.RequireAuth(), controller.UpdateTeam)
		teams.POST("/:team_id/players", middleware.RequireAuth(), controller.AddPlayer)
		teams.DELETE("/:team_id/players/:player_id", middleware.RequireAuth(), controller.RemovePlayer)
		teams.GET("/:team_id/join-requests", middleware.RequireAuth(), controller.GetJoinRequests)
		teams.PUT("/:team_id/join-requests/:request_id", middleware.RequireAuth(), controller.ResolveJoinRequest)
	}

	rg.POST("/join-requests", middleware.RequireAuth(), controller.CreateJoinRequest)
}

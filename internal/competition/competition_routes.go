package competition

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterCompetitionRoutes wires the public competition pages.
func RegisterCompetitionRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	repo := NewCompetitionRepository(db)
	controller := NewCompetitionController(repo)

	competitions := rg.Group("/competitions")
	{
		competitions.GET("", controller.GetCompetitions)
		competitions.GET("/:competition_id/standings", controller.GetStandings)
	}
}

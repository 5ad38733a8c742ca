package stream

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterStreamRoutes wires the public transmissions pages.
func RegisterStreamRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	repo := NewStreamRepository(db)
	controller := NewStreamController(repo)

	streams := rg.Group("/streams")
	{
		streams.GET("", controller.GetStreams)
		streams.GET("/:stream_id", controller.GetStreamByID)
	}
}

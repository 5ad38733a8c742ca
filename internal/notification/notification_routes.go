package notification

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jfarias-dev/ligauni/internal/middleware"
	"github.com/jfarias-dev/ligauni/internal/profile"
)

// RegisterNotificationRoutes wires the signed-in user's own pages.
func RegisterNotificationRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	repo := NewNotificationRepository(db)
	profiles := profile.NewProfileRepository(db)
	controller := NewNotificationController(repo, profiles)

	me := rg.Group("/me")
	me.Use(middleware.RequireAuth())
	{
		me.GET("", controller.GetMe)
		me.GET("/notifications", controller.GetMyNotifications)
		me.GET("/preferences", controller.GetMyPreferences)
		me.PUT("/preferences", controller.UpsertMyPreference)
	}
}

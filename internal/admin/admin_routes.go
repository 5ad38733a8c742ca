package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jfarias-dev/ligauni/internal/middleware"
	"github.com/jfarias-dev/ligauni/internal/registry"
)

// RegisterAdminRoutes wires the generic object manager under /admin.
// Authorization for mutations happens inside the dispatcher so failures
// keep the uniform echoed-body shape.
func RegisterAdminRoutes(rg *gin.RouterGroup, db *gorm.DB) *Dispatcher {
	reg := registry.New()
	store := NewStore(db)
	cache := NewViewCache(log.With().Str("component", "viewcache").Logger())
	dispatcher := NewDispatcher(reg, store, cache, log.With().Str("component", "admin").Logger())
	controller := NewAdminController(dispatcher)

	adminGroup := rg.Group("/admin")
	adminGroup.Use(middleware.RequireAuth())
	{
		adminGroup.GET("/entities", controller.ListEntities)
		adminGroup.GET("/:entity", controller.List)
		adminGroup.POST("/:entity", controller.Create)
		adminGroup.PUT("/:entity/:id", controller.Update)
		adminGroup.DELETE("/:entity/:id", controller.Delete)
	}
	return dispatcher
}

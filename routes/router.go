package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/jfarias-dev/ligauni/config"
	"github.com/jfarias-dev/ligauni/internal/admin"
	"github.com/jfarias-dev/ligauni/internal/competition"
	"github.com/jfarias-dev/ligauni/internal/match"
	"github.com/jfarias-dev/ligauni/internal/middleware"
	"github.com/jfarias-dev/ligauni/internal/notification"
	"github.com/jfarias-dev/ligauni/internal/profile"
	"github.com/jfarias-dev/ligauni/internal/stream"
	"github.com/jfarias-dev/ligauni/internal/team"
)

func SetupRoutes() *gin.Engine {
	cfg := config.GetConfig()
	db := config.DB

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.App.FrontendURL}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes. Identity runs on everything; public handlers simply see
	// the anonymous actor.
	api := r.Group("/api")
	api.Use(middleware.Identity(cfg.Auth.JWTSecret, profile.NewProfileRepository(db)))

	team.RegisterTeamRoutes(api, db)
	competition.RegisterCompetitionRoutes(api, db)
	match.RegisterMatchRoutes(api, db)
	stream.RegisterStreamRoutes(api, db)
	notification.RegisterNotificationRoutes(api, db)
	admin.RegisterAdminRoutes(api, db)

	return r
}

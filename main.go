package main

import (
	"log"

	"github.com/jfarias-dev/ligauni/config"
	_ "github.com/jfarias-dev/ligauni/docs"
	"github.com/jfarias-dev/ligauni/internal/competition"
	"github.com/jfarias-dev/ligauni/internal/match"
	"github.com/jfarias-dev/ligauni/internal/notification"
	"github.com/jfarias-dev/ligauni/internal/profile"
	"github.com/jfarias-dev/ligauni/internal/stream"
	"github.com/jfarias-dev/ligauni/internal/team"
	"github.com/jfarias-dev/ligauni/routes"
)

// @title Liga Universitaria REST API
// @version 1.0
// @description Backend for the university intramural sports league.
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&profile.Profile{},
		&team.Team{}, &team.Player{}, &team.JoinTeamRequest{},
		&competition.Competition{}, &competition.TeamCompetition{},
		&match.Match{}, &match.Lineup{}, &match.Event{},
		&match.EventPlayer{}, &match.MatchAttendance{},
		&stream.Stream{},
		&notification.Notification{}, &notification.Preference{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	r := routes.SetupRoutes()

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

// match/match_model.go
package match

import (
	"time"

	"gorm.io/gorm"

	"github.com/jfarias-dev/ligauni/internal/competition"
	"github.com/jfarias-dev/ligauni/internal/team"
)

type EventType string

const (
	EventGoal         EventType = "goal"
	EventYellowCard   EventType = "yellow_card"
	EventRedCard      EventType = "red_card"
	EventSubstitution EventType = "substitution"
)

type EventPlayerRole string

const (
	RoleMain           EventPlayerRole = "main"
	RoleAssist         EventPlayerRole = "assist"
	RoleSubstitutedIn  EventPlayerRole = "substituted_in"
	RoleSubstitutedOut EventPlayerRole = "substituted_out"
)

// Match is a scheduled game between two distinct teams of a competition.
// Its status is never stored as text: it is derived from the started /
// finished marks and the validated flag (see status.go).
type Match struct {
	gorm.Model
	LocalTeamID   uint                     `json:"local_team_id" gorm:"index;not null"`
	LocalTeam     *team.Team               `json:"local_team,omitempty" gorm:"foreignKey:LocalTeamID"`
	VisitorTeamID uint                     `json:"visitor_team_id" gorm:"index;not null"`
	VisitorTeam   *team.Team               `json:"visitor_team,omitempty" gorm:"foreignKey:VisitorTeamID"`
	CompetitionID uint                     `json:"competition_id" gorm:"index;not null"`
	Competition   *competition.Competition `json:"competition,omitempty" gorm:"foreignKey:CompetitionID"`
	StreamID      *uint                    `json:"stream_id,omitempty" gorm:"index"`
	ScheduledAt   time.Time                `json:"scheduled_at" gorm:"index"`
	Location      string                   `json:"location"`
	LocalScore    int                      `json:"local_score" gorm:"default:0"`
	VisitorScore  int                      `json:"visitor_score" gorm:"default:0"`
	StartedAt     *time.Time               `json:"started_at,omitempty"`
	FinishedAt    *time.Time               `json:"finished_at,omitempty"`
	Validated     bool                     `json:"validated" gorm:"default:false"`
}

// Lineup is a team's starting formation for one match. At most one lineup
// per (team, match); the unique index is the authoritative guard, the
// application check only gives the earlier, friendlier error.
type Lineup struct {
	gorm.Model
	TeamID  uint   `json:"team_id" gorm:"index;not null;uniqueIndex:idx_team_match_lineup"`
	MatchID uint   `json:"match_id" gorm:"index;not null;uniqueIndex:idx_team_match_lineup"`
	Matrix  string `json:"matrix"` // formation payload, opaque to the server
}

// Event is something the scorekeeper recorded during a match.
type Event struct {
	gorm.Model
	MatchID uint      `json:"match_id" gorm:"index;not null"`
	TeamID  uint      `json:"team_id" gorm:"index;not null"`
	Type    EventType `json:"type" gorm:"not null"`
	Minute  int       `json:"minute" gorm:"not null"`
}

// EventPlayer links an event to a participating player. An event has at
// most one "main" link; writes of a new main replace the previous one.
type EventPlayer struct {
	gorm.Model
	EventID  uint            `json:"event_id" gorm:"index;not null"`
	PlayerID uint            `json:"player_id" gorm:"index;not null"`
	Player   *team.Player    `json:"player,omitempty" gorm:"foreignKey:PlayerID"`
	Role     EventPlayerRole `json:"role" gorm:"not null"`
}

// MatchAttendance is one line of the scorekeeper's attendance sheet.
// Jersey numbers must be unique within a match's roster.
type MatchAttendance struct {
	gorm.Model
	MatchID      uint         `json:"match_id" gorm:"index;not null;uniqueIndex:idx_match_player_attendance"`
	PlayerID     uint         `json:"player_id" gorm:"not null;uniqueIndex:idx_match_player_attendance"`
	Player       *team.Player `json:"player,omitempty" gorm:"foreignKey:PlayerID"`
	TeamID       uint         `json:"team_id" gorm:"index;not null"`
	JerseyNumber int          `json:"jersey_number" gorm:"not null"`
}

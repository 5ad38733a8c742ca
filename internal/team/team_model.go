// team/team_model.go
package team

import (
	"gorm.io/gorm"

	"github.com/jfarias-dev/ligauni/internal/profile"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Team represents a department team of the intramural league.
type Team struct {
	gorm.Model
	Name        string           `json:"name" gorm:"uniqueIndex;not null"`
	Major       string           `json:"major" gorm:"index;not null"`
	Description string           `json:"description"`
	Logo        string           `json:"logo"`
	CaptainID   *uint            `json:"captain_id,omitempty" gorm:"index"`
	Captain     *profile.Profile `json:"captain,omitempty" gorm:"foreignKey:CaptainID"`
	Players     []Player         `json:"players,omitempty" gorm:"foreignKey:TeamID"`
}

// Player is a roster entry. Jersey numbers are only required to be unique
// within a match's attendance roster, not here.
type Player struct {
	gorm.Model
	TeamID       uint             `json:"team_id" gorm:"index;not null"`
	ProfileID    *uint            `json:"profile_id,omitempty" gorm:"index"`
	Profile      *profile.Profile `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
	FirstName    string           `json:"first_name" gorm:"not null"`
	LastName     string           `json:"last_name" gorm:"not null"`
	Position     string           `json:"position" gorm:"not null"` // GK, DEF, MID, FWD
	JerseyNumber *int             `json:"jersey_number,omitempty"`
}

// JoinTeamRequest is a profile's request to be assigned to a team.
// States: pending -> approved | rejected. Only one pending request per
// profile at a time.
type JoinTeamRequest struct {
	gorm.Model
	ProfileID uint             `json:"profile_id" gorm:"index;not null"`
	Profile   *profile.Profile `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
	TeamID    uint             `json:"team_id" gorm:"index;not null"`
	Status    string           `json:"status" gorm:"index;default:'pending'"`
	Position  string           `json:"position"`
	Major     string           `json:"major"`
	Phone     string           `json:"phone"`
}

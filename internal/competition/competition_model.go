// competition/competition_model.go
package competition

import (
	"time"

	"gorm.io/gorm"

	"github.com/jfarias-dev/ligauni/internal/team"
)

// Competition is one semester's tournament.
type Competition struct {
	gorm.Model
	Name      string    `json:"name" gorm:"not null"`
	Year      int       `json:"year" gorm:"index;not null"`
	Semester  int       `json:"semester" gorm:"not null"` // 1 | 2
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// TeamCompetition is one standings row: a team's accumulated points inside
// a competition. Position is the stored tie-break order; no goal-difference
// style secondary key is applied beyond it.
type TeamCompetition struct {
	gorm.Model
	TeamID        uint       `json:"team_id" gorm:"index;not null;uniqueIndex:idx_team_competition"`
	Team          *team.Team `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	CompetitionID uint       `json:"competition_id" gorm:"index;not null;uniqueIndex:idx_team_competition"`
	Points        int        `json:"points" gorm:"default:0"`
	Position      int        `json:"position" gorm:"default:0"`
}

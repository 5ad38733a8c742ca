package match

import (
	"errors"

	"gorm.io/gorm"
)

// MatchRepository defines the interface for match data operations.
type MatchRepository interface {
	GetByID(id uint) (*Match, error)
	GetDetailed(id uint) (*Match, error)
	GetAll(competitionID uint) ([]Match, error)
	GetByTeamID(teamID uint) ([]Match, error)
	UpdateMatch(m *Match) error

	GetLineups(matchID uint) ([]Lineup, error)

	GetEvents(matchID uint) ([]Event, error)
	CreateEvent(e *Event) error
	GetEventPlayers(eventID uint) ([]EventPlayer, error)
	CreateEventPlayer(ep *EventPlayer) error

	GetAttendance(matchID uint) ([]MatchAttendance, error)
	JerseyTaken(matchID uint, jerseyNumber int) (bool, error)
	PlayerAttending(matchID, playerID uint) (bool, error)
	CreateAttendance(a *MatchAttendance) error
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new instance of MatchRepository.
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) GetByID(id uint) (*Match, error) {
	var m Match
	if err := r.db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *matchRepository) GetDetailed(id uint) (*Match, error) {
	var m Match
	err := r.db.Preload("LocalTeam").Preload("VisitorTeam").Preload("Competition").First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *matchRepository) GetAll(competitionID uint) ([]Match, error) {
	var matches []Match
	query := r.db.Preload("LocalTeam").Preload("VisitorTeam")
	if competitionID > 0 {
		query = query.Where("competition_id = ?", competitionID)
	}
	if err := query.Order("scheduled_at desc").Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) GetByTeamID(teamID uint) ([]Match, error) {
	var matches []Match
	err := r.db.Preload("LocalTeam").Preload("VisitorTeam").
		Where("local_team_id = ? OR visitor_team_id = ?", teamID, teamID).
		Order("scheduled_at asc").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) UpdateMatch(m *Match) error {
	return r.db.Save(m).Error
}

func (r *matchRepository) GetLineups(matchID uint) ([]Lineup, error) {
	var lineups []Lineup
	if err := r.db.Where("match_id = ?", matchID).Find(&lineups).Error; err != nil {
		return nil, err
	}
	return lineups, nil
}

func (r *matchRepository) GetEvents(matchID uint) ([]Event, error) {
	var events []Event
	err := r.db.Where("match_id = ?", matchID).Order("minute asc").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *matchRepository) CreateEvent(e *Event) error {
	return r.db.Create(e).Error
}

func (r *matchRepository) GetEventPlayers(eventID uint) ([]EventPlayer, error) {
	var links []EventPlayer
	err := r.db.Preload("Player").Where("event_id = ?", eventID).Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *matchRepository) CreateEventPlayer(ep *EventPlayer) error {
	return r.db.Create(ep).Error
}

func (r *matchRepository) GetAttendance(matchID uint) ([]MatchAttendance, error) {
	var rows []MatchAttendance
	err := r.db.Preload("Player").Where("match_id = ?", matchID).Order("jersey_number asc").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *matchRepository) JerseyTaken(matchID uint, jerseyNumber int) (bool, error) {
	var count int64
	err := r.db.Model(&MatchAttendance{}).
		Where("match_id = ? AND jersey_number = ?", matchID, jerseyNumber).
		Count(&count).Error
	return count > 0, err
}

func (r *matchRepository) PlayerAttending(matchID, playerID uint) (bool, error) {
	var count int64
	err := r.db.Model(&MatchAttendance{}).
		Where("match_id = ? AND player_id = ?", matchID, playerID).
		Count(&count).Error
	return count > 0, err
}

func (r *matchRepository) CreateAttendance(a *MatchAttendance) error {
	return r.db.Create(a).Error
}

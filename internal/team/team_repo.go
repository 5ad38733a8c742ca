package team

import (
	"errors"

	"gorm.io/gorm"
)

// TeamRepository defines the interface for team data operations.
type TeamRepository interface {
	GetTeamByID(id uint) (*Team, error)
	GetTeamWithRoster(id uint) (*Team, error)
	GetAllTeams(page, limit int, major string) ([]Team, int64, error)
	UpdateTeam(team *Team) error

	GetPlayerByID(id uint) (*Player, error)
	GetPlayerByProfileID(profileID uint) (*Player, error)
	CreatePlayer(player *Player) error
	DeletePlayer(id uint) error
	PlayerHasHistory(playerID uint) (bool, error)

	CreateJoinRequest(request *JoinTeamRequest) error
	GetJoinRequestByID(id uint) (*JoinTeamRequest, error)
	GetJoinRequestsByTeamID(teamID uint, status string) ([]JoinTeamRequest, error)
	GetPendingRequestByProfileID(profileID uint) (*JoinTeamRequest, error)
	UpdateJoinRequest(request *JoinTeamRequest) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) GetTeamByID(id uint) (*Team, error) {
	var team Team
	if err := r.db.Preload("Captain").First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetTeamWithRoster(id uint) (*Team, error) {
	var team Team
	err := r.db.Preload("Captain").Preload("Players").First(&team, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetAllTeams(page, limit int, major string) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.Model(&Team{})
	if major != "" {
		query = query.Where("major = ?", major)
	}

	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("name asc").Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (r *teamRepository) UpdateTeam(team *Team) error {
	return r.db.Save(team).Error
}

func (r *teamRepository) GetPlayerByID(id uint) (*Player, error) {
	var player Player
	if err := r.db.First(&player, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &player, nil
}

func (r *teamRepository) GetPlayerByProfileID(profileID uint) (*Player, error) {
	var player Player
	err := r.db.Where("profile_id = ?", profileID).First(&player).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &player, nil
}

func (r *teamRepository) CreatePlayer(player *Player) error {
	return r.db.Create(player).Error
}

func (r *teamRepository) DeletePlayer(id uint) error {
	return r.db.Delete(&Player{}, id).Error
}

// PlayerHasHistory reports whether the player already appears in events or
// attendance sheets, which blocks removal from the roster.
func (r *teamRepository) PlayerHasHistory(playerID uint) (bool, error) {
	var count int64
	if err := r.db.Table("event_players").Where("player_id = ?", playerID).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.db.Table("match_attendances").Where("player_id = ?", playerID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *teamRepository) CreateJoinRequest(request *JoinTeamRequest) error {
	return r.db.Create(request).Error
}

func (r *teamRepository) GetJoinRequestByID(id uint) (*JoinTeamRequest, error) {
	var request JoinTeamRequest
	if err := r.db.Preload("Profile").First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *teamRepository) GetJoinRequestsByTeamID(teamID uint, status string) ([]JoinTeamRequest, error) {
	var requests []JoinTeamRequest
	query := r.db.Preload("Profile").Where("team_id = ?", teamID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at desc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *teamRepository) GetPendingRequestByProfileID(profileID uint) (*JoinTeamRequest, error) {
	var request JoinTeamRequest
	err := r.db.Where("profile_id = ? AND status = ?", profileID, StatusPending).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *teamRepository) UpdateJoinRequest(request *JoinTeamRequest) error {
	return r.db.Save(request).Error
}

package competition

import (
	"errors"

	"gorm.io/gorm"
)

// CompetitionRepository defines the interface for competition data operations.
type CompetitionRepository interface {
	GetAll() ([]Competition, error)
	GetByID(id uint) (*Competition, error)
	GetStandings(competitionID uint) ([]TeamCompetition, error)
}

type competitionRepository struct {
	db *gorm.DB
}

// NewCompetitionRepository creates a new instance of CompetitionRepository.
func NewCompetitionRepository(db *gorm.DB) CompetitionRepository {
	return &competitionRepository{db: db}
}

func (r *competitionRepository) GetAll() ([]Competition, error) {
	var competitions []Competition
	err := r.db.Order("year desc, semester desc").Find(&competitions).Error
	if err != nil {
		return nil, err
	}
	return competitions, nil
}

func (r *competitionRepository) GetByID(id uint) (*Competition, error) {
	var competition Competition
	if err := r.db.First(&competition, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &competition, nil
}

func (r *competitionRepository) GetStandings(competitionID uint) ([]TeamCompetition, error) {
	var rows []TeamCompetition
	err := r.db.Preload("Team").
		Where("competition_id = ?", competitionID).
		Order("position asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

package stream

import (
	"errors"

	"gorm.io/gorm"
)

// StreamRepository defines the interface for stream data operations.
type StreamRepository interface {
	GetAll(page, limit int) ([]Stream, int64, error)
	GetByID(id uint) (*Stream, error)
	GetByMatchID(matchID uint) (*Stream, error)
}

type streamRepository struct {
	db *gorm.DB
}

// NewStreamRepository creates a new instance of StreamRepository.
func NewStreamRepository(db *gorm.DB) StreamRepository {
	return &streamRepository{db: db}
}

// GetAll lists streams with live broadcasts first, newest after.
func (r *streamRepository) GetAll(page, limit int) ([]Stream, int64, error) {
	var streams []Stream
	var total int64

	r.db.Model(&Stream{}).Count(&total)
	offset := (page - 1) * limit
	err := r.db.Order("is_live_stream desc, stream_date desc").
		Offset(offset).Limit(limit).
		Find(&streams).Error
	if err != nil {
		return nil, 0, err
	}
	return streams, total, nil
}

func (r *streamRepository) GetByID(id uint) (*Stream, error) {
	var s Stream
	if err := r.db.First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *streamRepository) GetByMatchID(matchID uint) (*Stream, error) {
	var s Stream
	err := r.db.Where("match_id = ?", matchID).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

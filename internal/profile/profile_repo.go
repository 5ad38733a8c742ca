package profile

import (
	"errors"

	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations.
// Profiles are written through the generic admin path, so the repository
// is read-only.
type ProfileRepository interface {
	GetByID(id uint) (*Profile, error)
	GetByAuthID(authID string) (*Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new instance of ProfileRepository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(id uint) (*Profile, error) {
	var p Profile
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) GetByAuthID(authID string) (*Profile, error) {
	var p Profile
	if err := r.db.Where("auth_id = ?", authID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}


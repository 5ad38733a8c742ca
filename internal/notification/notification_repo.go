package notification

import (
	"errors"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification and
// preference data operations.
type NotificationRepository interface {
	GetByProfileID(profileID uint, page, limit int) ([]Notification, int64, error)

	GetPreferencesByProfileID(profileID uint) ([]Preference, error)
	GetPreference(profileID uint, prefType, channel string) (*Preference, error)
	CreatePreference(p *Preference) error
	UpdatePreference(p *Preference) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) GetByProfileID(profileID uint, page, limit int) ([]Notification, int64, error) {
	var rows []Notification
	var total int64

	query := r.db.Model(&Notification{}).Where("profile_id = ?", profileID)
	query.Count(&total)
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *notificationRepository) GetPreferencesByProfileID(profileID uint) ([]Preference, error) {
	var prefs []Preference
	err := r.db.Where("profile_id = ?", profileID).Order("type asc, channel asc").Find(&prefs).Error
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

func (r *notificationRepository) GetPreference(profileID uint, prefType, channel string) (*Preference, error) {
	var pref Preference
	err := r.db.Where("profile_id = ? AND type = ? AND channel = ?", profileID, prefType, channel).First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pref, nil
}

func (r *notificationRepository) CreatePreference(p *Preference) error {
	return r.db.Create(p).Error
}

func (r *notificationRepository) UpdatePreference(p *Preference) error {
	return r.db.Save(p).Error
}

// notification/notification_model.go
package notification

import (
	"gorm.io/gorm"

	"github.com/jfarias-dev/ligauni/internal/profile"
)

const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

const (
	TypeNotification = "notification"
	TypePrivacy      = "privacy"
	TypeDisplay      = "display"
)

// Notification is a queued message for a profile, optionally tied to a
// match and the preference that produced it.
type Notification struct {
	gorm.Model
	ProfileID    uint             `json:"profile_id" gorm:"index;not null"`
	Profile      *profile.Profile `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
	MatchID      *uint            `json:"match_id,omitempty" gorm:"index"`
	PreferenceID *uint            `json:"preference_id,omitempty" gorm:"index"`
	IsEnabled    bool             `json:"is_enabled" gorm:"default:true"`
	Status       string           `json:"status" gorm:"default:'pending';index"`
}

// Preference is a profile's notification setting. One row per
// (profile, type, channel); the unique index is authoritative, the
// application check only gives the earlier, friendlier error.
type Preference struct {
	gorm.Model
	ProfileID       uint   `json:"profile_id" gorm:"not null;uniqueIndex:idx_profile_type_channel"`
	Type            string `json:"type" gorm:"not null;uniqueIndex:idx_profile_type_channel"`
	Channel         string `json:"channel" gorm:"not null;uniqueIndex:idx_profile_type_channel"`
	LeadTimeMinutes int    `json:"lead_time_minutes" gorm:"default:0"`
	IsEnabled       bool   `json:"is_enabled" gorm:"default:true"`
}

// stream/stream_model.go
package stream

import (
	"time"

	"gorm.io/gorm"
)

// Stream is a published transmission, usually a YouTube broadcast of a
// match. A stream may exist before being attached to a match.
type Stream struct {
	gorm.Model
	MatchID        *uint     `json:"match_id,omitempty" gorm:"index"`
	YoutubeVideoID string    `json:"youtube_video_id" gorm:"not null"`
	Title          string    `json:"title" gorm:"not null"`
	IsLiveStream   bool      `json:"is_live_stream" gorm:"default:false;index"`
	StreamDate     time.Time `json:"stream_date" gorm:"index"`
}

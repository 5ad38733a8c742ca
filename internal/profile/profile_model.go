// profile/profile_model.go
package profile

import (
	"gorm.io/gorm"
)

// Profile mirrors an identity known to the external identity service.
// AuthID is the opaque id the service assigns; it is generated locally
// only when an admin creates the profile before the upstream sync.
type Profile struct {
	gorm.Model
	AuthID    string `json:"auth_id" gorm:"uniqueIndex;not null"`
	Username  string `json:"username" gorm:"uniqueIndex;not null"`
	Email     string `json:"email" gorm:"index"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Major     string `json:"major"`
}

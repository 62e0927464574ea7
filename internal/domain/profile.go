package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Profile holds per-user search preferences. UserID is the identity
// provider's opaque subject; exactly one profile exists per user.
type Profile struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      string    `gorm:"type:text;uniqueIndex;not null" json:"user_id"`
	DisplayName string    `gorm:"type:text;not null" json:"display_name"`
	AvatarURL   *string   `gorm:"type:text" json:"avatar_url"`

	PreferredCountries pq.StringArray `gorm:"type:text[]" json:"preferred_countries"`
	TargetRoles        pq.StringArray `gorm:"type:text[]" json:"target_roles"`
	Seniority          *string        `gorm:"type:text" json:"seniority"`
	RemotePreference   *string        `gorm:"type:text" json:"remote_preference"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Application tracks a user's pursuit of a job. The (user_id, job_id) pair is
// unique. AppliedAt is stamped on the first transition into "applied" and
// never overwritten afterwards.
type Application struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID string    `gorm:"type:text;not null;uniqueIndex:idx_applications_user_job" json:"user_id"`
	JobID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_job" json:"job_id"`

	Status    Status     `gorm:"type:text;not null;default:'saved'" json:"status"`
	AppliedAt *time.Time `json:"applied_at"`
	Notes     string     `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Application) TableName() string { return "applications" }

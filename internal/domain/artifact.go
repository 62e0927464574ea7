package domain

import (
	"time"

	"github.com/google/uuid"
)

// Artifact is a generated document (CV, cover letter, outreach message).
// Approved starts false and only an explicit user approval ever sets it true;
// the generation service must never approve its own output.
type Artifact struct {
	ID     uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID string     `gorm:"type:text;index;not null" json:"user_id"`
	JobID  *uuid.UUID `gorm:"type:uuid;index" json:"job_id"`

	Type    ArtifactType `gorm:"type:text;not null" json:"type"`
	Content string       `gorm:"type:text;not null" json:"content"`
	Version string       `gorm:"type:text;not null;default:'1.0'" json:"version"`

	Model         *string `gorm:"type:text" json:"model"`
	PromptVersion *string `gorm:"type:text" json:"prompt_version"`
	Approved      bool    `gorm:"not null;default:false" json:"approved"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Artifact) TableName() string { return "artifacts" }

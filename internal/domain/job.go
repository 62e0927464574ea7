package domain

import (
	"time"

	"github.com/google/uuid"
)

// Job is a posting captured by a user, by hand or by bulk import. RankScore
// is an externally computed 0-100 fitness score and stays null until the
// ranking collaborator fills it.
type Job struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID string    `gorm:"type:text;index;not null" json:"user_id"`

	Title       string  `gorm:"type:text;not null" json:"title"`
	Company     string  `gorm:"type:text;not null" json:"company"`
	SourceURL   *string `gorm:"type:text" json:"source_url"`
	Description *string `gorm:"type:text" json:"description"`
	CountryCode *string `gorm:"type:text" json:"country_code"`
	Location    *string `gorm:"type:text" json:"location"`
	RemoteType  *string `gorm:"type:text" json:"remote_type"`

	SalaryMin *int   `json:"salary_min"`
	SalaryMax *int   `json:"salary_max"`
	Currency  string `gorm:"type:text;not null;default:'USD'" json:"currency"`

	RankScore *float64 `json:"rank_score"`
	Status    Status   `gorm:"type:text;not null;default:'saved'" json:"status"`

	IngestedAt time.Time `gorm:"not null;default:now()" json:"ingested_at"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Applications []Application `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
	Artifacts    []Artifact    `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Job) TableName() string { return "jobs" }

package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLogEntry is an append-only record of a mutating action. ActorID is
// nullable so entries survive deletion of the acting user. No update or
// delete is ever exposed for this entity.
type AuditLogEntry struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ActorID *string   `gorm:"type:text;index" json:"actor_id"`

	Action       string         `gorm:"type:text;not null" json:"action"`
	ResourceType string         `gorm:"type:text;not null" json:"resource_type"`
	ResourceID   *string        `gorm:"type:text" json:"resource_id"`
	Metadata     datatypes.JSON `gorm:"type:jsonb" json:"metadata"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLogEntry) TableName() string { return "audit_log" }

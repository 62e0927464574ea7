package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/jasveersingh-de/opportunity/internal/domain"
)

// AuditRepository is insert-only plus a scoped read. The append-only contract
// of the audit log is enforced here by simply not exposing update or delete.
type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditLogEntry) error
	ListByActor(ctx context.Context, actorID string, limit, offset int) ([]domain.AuditLogEntry, error)
	WithTx(tx *gorm.DB) AuditRepository
}

type auditRepo struct{ db *gorm.DB }

// NewAuditRepository wraps the trusted database handle. Request handlers
// never get this repository directly; only the audit writer holds it.
func NewAuditRepository(db *gorm.DB) AuditRepository { return &auditRepo{db: db} }

func (r *auditRepo) WithTx(tx *gorm.DB) AuditRepository {
	if tx == nil {
		return r
	}
	return &auditRepo{db: tx}
}

func (r *auditRepo) Append(ctx context.Context, entry *domain.AuditLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepo) ListByActor(ctx context.Context, actorID string, limit, offset int) ([]domain.AuditLogEntry, error) {
	var entries []domain.AuditLogEntry
	err := r.db.WithContext(ctx).
		Where("actor_id = ?", actorID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

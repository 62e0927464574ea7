package usecase

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	repo "github.com/jasveersingh-de/opportunity/internal/adapters/postgres"
	"github.com/jasveersingh-de/opportunity/internal/domain"
	pkglog "github.com/jasveersingh-de/opportunity/pkg/log"
)

// AuditWriter appends one entry per mutating operation. It holds the trusted
// repository handle; nothing reachable from a request handler can write the
// audit log except through a business operation that goes via this interface.
type AuditWriter interface {
	Record(ctx context.Context, tx *gorm.DB, actorID, action, resourceType string, resourceID *string, metadata map[string]any) error
}

type auditWriter struct {
	logger  pkglog.Logger
	entries repo.AuditRepository
}

func NewAuditWriter(logger pkglog.Logger, entries repo.AuditRepository) AuditWriter {
	return &auditWriter{logger: logger, entries: entries}
}

func (w *auditWriter) Record(ctx context.Context, tx *gorm.DB, actorID, action, resourceType string, resourceID *string, metadata map[string]any) error {
	entry := &domain.AuditLogEntry{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
	if actorID != "" {
		entry.ActorID = &actorID
	}
	if metadata != nil {
		payload, err := json.Marshal(metadata)
		if err != nil {
			return &domain.AuditWriteError{Err: err}
		}
		entry.Metadata = payload
	}
	if err := w.entries.WithTx(tx).Append(ctx, entry); err != nil {
		w.logger.Error().Err(err).Str("action", action).Str("resource_type", resourceType).Msg("audit append failed")
		return &domain.AuditWriteError{Err: err}
	}
	return nil
}

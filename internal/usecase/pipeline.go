package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jasveersingh-de/opportunity/config"
	repo "github.com/jasveersingh-de/opportunity/internal/adapters/postgres"
	"github.com/jasveersingh-de/opportunity/internal/domain"
	pkglog "github.com/jasveersingh-de/opportunity/pkg/log"
)

// PipelineService manages application records: one per (user, job), five
// statuses, every mutation audited.
type PipelineService interface {
	CreateApplication(ctx context.Context, traceID, userID string, jobID uuid.UUID, notes string) (*domain.Application, error)
	UpdateStatus(ctx context.Context, traceID, userID string, applicationID uuid.UUID, newStatus string) (*domain.Application, error)
	DeleteApplication(ctx context.Context, traceID, userID string, applicationID uuid.UUID) error
	ListApplications(ctx context.Context, userID string, f domain.ApplicationFilter) ([]domain.Application, error)
}

type pipelineService struct {
	cfg    *config.Config
	logger pkglog.Logger
	jobs   repo.JobRepository
	apps   repo.ApplicationRepository
	txm    repo.TxManager
	audit  AuditWriter
	nowFn  func() time.Time
}

func NewPipelineService(cfg *config.Config, logger pkglog.Logger, jobs repo.JobRepository, apps repo.ApplicationRepository, txm repo.TxManager, audit AuditWriter) PipelineService {
	return &pipelineService{cfg: cfg, logger: logger, jobs: jobs, apps: apps, txm: txm, audit: audit, nowFn: time.Now}
}

func (s *pipelineService) CreateApplication(ctx context.Context, traceID, userID string, jobID uuid.UUID, notes string) (*domain.Application, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if job.UserID != userID {
		return nil, domain.ErrForbidden
	}

	if _, err := s.apps.FindByUserAndJob(ctx, userID, jobID); err == nil {
		return nil, domain.ErrDuplicateApplication
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	app := &domain.Application{
		UserID: userID,
		JobID:  jobID,
		Status: domain.StatusSaved,
		Notes:  notes,
	}
	err = s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.apps.WithTx(tx).Create(ctx, app); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrDuplicateApplication
			}
			return err
		}
		id := app.ID.String()
		return s.audit.Record(ctx, tx, userID, "create", "application", &id, map[string]any{
			"job_id": jobID.String(),
			"status": string(app.Status),
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("trace_id", traceID).Str("user_id", userID).Str("application_id", app.ID.String()).Msg("application created")
	return app, nil
}

func (s *pipelineService) UpdateStatus(ctx context.Context, traceID, userID string, applicationID uuid.UUID, newStatus string) (*domain.Application, error) {
	status, err := domain.ParseStatus(newStatus)
	if err != nil {
		return nil, err
	}

	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if app.UserID != userID {
		return nil, domain.ErrForbidden
	}

	oldStatus := app.Status
	app.Status = status
	// applied_at is stamped once, on the first transition into "applied",
	// and never overwritten. Leaving "applied" and coming back keeps the
	// original application date.
	if status == domain.StatusApplied && app.AppliedAt == nil {
		now := s.nowFn().UTC()
		app.AppliedAt = &now
	}

	err = s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.apps.WithTx(tx).Update(ctx, app); err != nil {
			return err
		}
		id := app.ID.String()
		return s.audit.Record(ctx, tx, userID, "update", "application", &id, map[string]any{
			"old_status": string(oldStatus),
			"new_status": string(status),
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("trace_id", traceID).Str("user_id", userID).Str("application_id", app.ID.String()).
		Str("old_status", string(oldStatus)).Str("new_status", string(status)).Msg("application status updated")
	return app, nil
}

func (s *pipelineService) DeleteApplication(ctx context.Context, traceID, userID string, applicationID uuid.UUID) error {
	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	if app.UserID != userID {
		return domain.ErrForbidden
	}

	// The audit entry carries the resource id because the row it describes
	// is gone once this commits.
	err = s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		id := app.ID.String()
		if err := s.audit.Record(ctx, tx, userID, "delete", "application", &id, map[string]any{
			"job_id": app.JobID.String(),
			"status": string(app.Status),
		}); err != nil {
			return err
		}
		return s.apps.WithTx(tx).Delete(ctx, app.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("trace_id", traceID).Str("user_id", userID).Str("application_id", applicationID.String()).Msg("application deleted")
	return nil
}

func (s *pipelineService) ListApplications(ctx context.Context, userID string, f domain.ApplicationFilter) ([]domain.Application, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, &domain.ValidationError{Field: "status", Reason: "unknown status"}
	}
	f.Limit = clampLimit(f.Limit, s.cfg.PageSizeDefault, s.cfg.PageSizeMax)
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.apps.List(ctx, userID, f)
}

// clampLimit keeps every listing bounded; zero or negative means "use the
// configured default".
func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

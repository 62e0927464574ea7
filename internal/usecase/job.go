package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jasveersingh-de/opportunity/config"
	repo "github.com/jasveersingh-de/opportunity/internal/adapters/postgres"
	"github.com/jasveersingh-de/opportunity/internal/domain"
	pkglog "github.com/jasveersingh-de/opportunity/pkg/log"
)

type JobService interface {
	CreateJob(ctx context.Context, traceID, userID string, input JobInput) (*domain.Job, error)
	GetJob(ctx context.Context, userID string, jobID uuid.UUID) (*domain.Job, error)
	ListJobs(ctx context.Context, userID string, f domain.JobFilter) ([]domain.Job, error)
	UpdateJob(ctx context.Context, traceID, userID string, jobID uuid.UUID, patch JobPatch) (*domain.Job, error)
	DeleteJob(ctx context.Context, traceID, userID string, jobID uuid.UUID) error
	SetRankScore(ctx context.Context, traceID, userID string, jobID uuid.UUID, score float64) (*domain.Job, error)
}

type JobInput struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	SourceURL   *string  `json:"source_url"`
	Description *string  `json:"description"`
	CountryCode *string  `json:"country_code"`
	Location    *string  `json:"location"`
	RemoteType  *string  `json:"remote_type"`
	SalaryMin   *int     `json:"salary_min"`
	SalaryMax   *int     `json:"salary_max"`
	Currency    string   `json:"currency"`
	Status      *string  `json:"status"`
}

type JobPatch struct {
	Title       *string `json:"title"`
	Company     *string `json:"company"`
	SourceURL   *string `json:"source_url"`
	Description *string `json:"description"`
	CountryCode *string `json:"country_code"`
	Location    *string `json:"location"`
	RemoteType  *string `json:"remote_type"`
	SalaryMin   *int    `json:"salary_min"`
	SalaryMax   *int    `json:"salary_max"`
	Currency    *string `json:"currency"`
	Status      *string `json:"status"`
}

type jobService struct {
	cfg    *config.Config
	logger pkglog.Logger
	jobs   repo.JobRepository
	txm    repo.TxManager
	audit  AuditWriter
}

func NewJobService(cfg *config.Config, logger pkglog.Logger, jobs repo.JobRepository, txm repo.TxManager, audit AuditWriter) JobService {
	return &jobService{cfg: cfg, logger: logger, jobs: jobs, txm: txm, audit: audit}
}

func (s *jobService) CreateJob(ctx context.Context, traceID, userID string, input JobInput) (*domain.Job, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(input.Company) == "" {
		return nil, &domain.ValidationError{Field: "company", Reason: "must not be empty"}
	}
	status := domain.StatusSaved
	if input.Status != nil {
		parsed, err := domain.ParseStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}
	if input.RemoteType != nil && !domain.ValidRemoteType(*input.RemoteType) {
		return nil, &domain.ValidationError{Field: "remote_type", Reason: "must be remote, hybrid or onsite"}
	}
	if input.SalaryMin != nil && input.SalaryMax != nil && *input.SalaryMin > *input.SalaryMax {
		return nil, &domain.ValidationError{Field: "salary_min", Reason: "must not exceed salary_max"}
	}
	currency := strings.TrimSpace(input.Currency)
	if currency == "" {
		currency = "USD"
	}

	job := &domain.Job{
		UserID:      userID,
		Title:       input.Title,
		Company:     input.Company,
		SourceURL:   input.SourceURL,
		Description: input.Description,
		CountryCode: input.CountryCode,
		Location:    input.Location,
		RemoteType:  input.RemoteType,
		SalaryMin:   input.SalaryMin,
		SalaryMax:   input.SalaryMax,
		Currency:    currency,
		Status:      status,
	}
	err := s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.jobs.WithTx(tx).Create(ctx, job); err != nil {
			return err
		}
		id := job.ID.String()
		return s.audit.Record(ctx, tx, userID, "create", "job", &id, map[string]any{
			"title":   job.Title,
			"company": job.Company,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("trace_id", traceID).Str("user_id", userID).Str("job_id", job.ID.String()).Msg("job created")
	return job, nil
}

func (s *jobService) GetJob(ctx context.Context, userID string, jobID uuid.UUID) (*domain.Job, error) {
	return s.ownedJob(ctx, userID, jobID)
}

func (s *jobService) ListJobs(ctx context.Context, userID string, f domain.JobFilter) ([]domain.Job, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, &domain.ValidationError{Field: "status", Reason: "unknown status"}
	}
	f.Limit = clampLimit(f.Limit, s.cfg.PageSizeDefault, s.cfg.PageSizeMax)
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.jobs.List(ctx, userID, f)
}

func (s *jobService) UpdateJob(ctx context.Context, traceID, userID string, jobID uuid.UUID, patch JobPatch) (*domain.Job, error) {
	job, err := s.ownedJob(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	changed := map[string]any{}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
		}
		job.Title = *patch.Title
		changed["title"] = job.Title
	}
	if patch.Company != nil {
		if strings.TrimSpace(*patch.Company) == "" {
			return nil, &domain.ValidationError{Field: "company", Reason: "must not be empty"}
		}
		job.Company = *patch.Company
		changed["company"] = job.Company
	}
	if patch.SourceURL != nil {
		job.SourceURL = patch.SourceURL
	}
	if patch.Description != nil {
		job.Description = patch.Description
	}
	if patch.CountryCode != nil {
		job.CountryCode = patch.CountryCode
	}
	if patch.Location != nil {
		job.Location = patch.Location
	}
	if patch.RemoteType != nil {
		if !domain.ValidRemoteType(*patch.RemoteType) {
			return nil, &domain.ValidationError{Field: "remote_type", Reason: "must be remote, hybrid or onsite"}
		}
		job.RemoteType = patch.RemoteType
	}
	if patch.SalaryMin != nil {
		job.SalaryMin = patch.SalaryMin
	}
	if patch.SalaryMax != nil {
		job.SalaryMax = patch.SalaryMax
	}
	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		return nil, &domain.ValidationError{Field: "salary_min", Reason: "must not exceed salary_max"}
	}
	if patch.Currency != nil && strings.TrimSpace(*patch.Currency) != "" {
		job.Currency = *patch.Currency
	}
	if patch.Status != nil {
		// The job's own status mirror; independent of any application.
		status, err := domain.ParseStatus(*patch.Status)
		if err != nil {
			return nil, err
		}
		changed["old_status"] = string(job.Status)
		changed["new_status"] = string(status)
		job.Status = status
	}

	err = s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.jobs.WithTx(tx).Update(ctx, job); err != nil {
			return err
		}
		id := job.ID.String()
		return s.audit.Record(ctx, tx, userID, "update", "job", &id, changed)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("trace_id", traceID).Str("user_id", userID).Str("job_id", job.ID.String()).Msg("job updated")
	return job, nil
}

func (s *jobService) DeleteJob(ctx context.Context, traceID, userID string, jobID uuid.UUID) error {
	job, err := s.ownedJob(ctx, userID, jobID)
	if err != nil {
		return err
	}

	// Dependent applications and artifacts go with the job via the cascade
	// constraints on the schema.
	err = s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		id := job.ID.String()
		if err := s.audit.Record(ctx, tx, userID, "delete", "job", &id, map[string]any{
			"title":   job.Title,
			"company": job.Company,
		}); err != nil {
			return err
		}
		return s.jobs.WithTx(tx).Delete(ctx, job.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("trace_id", traceID).Str("user_id", userID).Str("job_id", jobID.String()).Msg("job deleted")
	return nil
}

// SetRankScore records the externally computed fitness score. The value is
// opaque beyond its 0-100 range.
func (s *jobService) SetRankScore(ctx context.Context, traceID, userID string, jobID uuid.UUID, score float64) (*domain.Job, error) {
	if score < 0 || score > 100 {
		return nil, &domain.ValidationError{Field: "rank_score", Reason: "must be between 0 and 100"}
	}
	job, err := s.ownedJob(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	job.RankScore = &score
	err = s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.jobs.WithTx(tx).Update(ctx, job); err != nil {
			return err
		}
		id := job.ID.String()
		return s.audit.Record(ctx, tx, userID, "rank", "job", &id, map[string]any{"rank_score": score})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("trace_id", traceID).Str("user_id", userID).Str("job_id", jobID.String()).Float64("rank_score", score).Msg("job ranked")
	return job, nil
}

func (s *jobService) ownedJob(ctx context.Context, userID string, jobID uuid.UUID) (*domain.Job, error) {
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
	return job, nil
}

package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jasveersingh-de/opportunity/config"
	"github.com/jasveersingh-de/opportunity/internal/adapters/generation"
	repo "github.com/jasveersingh-de/opportunity/internal/adapters/postgres"
	"github.com/jasveersingh-de/opportunity/internal/domain"
	pkglog "github.com/jasveersingh-de/opportunity/pkg/log"
)

type ArtifactService interface {
	GenerateArtifact(ctx context.Context, traceID, userID string, jobID *uuid.UUID, artifactType string) (*domain.Artifact, error)
	ApproveArtifact(ctx context.Context, traceID, userID string, artifactID uuid.UUID) (*domain.Artifact, error)
	ListArtifacts(ctx context.Context, userID string, limit, offset int) ([]domain.Artifact, error)
	DeleteArtifact(ctx context.Context, traceID, userID string, artifactID uuid.UUID) error
}

type artifactService struct {
	cfg       *config.Config
	logger    pkglog.Logger
	artifacts repo.ArtifactRepository
	profiles  repo.ProfileRepository
	jobs      repo.JobRepository
	generator generation.Client
	txm       repo.TxManager
	audit     AuditWriter
}

func NewArtifactService(cfg *config.Config, logger pkglog.Logger, artifacts repo.ArtifactRepository, profiles repo.ProfileRepository, jobs repo.JobRepository, generator generation.Client, txm repo.TxManager, audit AuditWriter) ArtifactService {
	return &artifactService{cfg: cfg, logger: logger, artifacts: artifacts, profiles: profiles, jobs: jobs, generator: generator, txm: txm, audit: audit}
}

// GenerateArtifact asks the external AI service for content and stores it
// unapproved. Regeneration creates a new artifact rather than mutating an
// existing one.
func (s *artifactService) GenerateArtifact(ctx context.Context, traceID, userID string, jobID *uuid.UUID, artifactType string) (*domain.Artifact, error) {
	at, err := domain.ParseArtifactType(artifactType)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var job *domain.Job
	if jobID != nil {
		job, err = s.jobs.FindByID(ctx, *jobID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, err
		}
		if job.UserID != userID {
			return nil, domain.ErrForbidden
		}
	}

	result, err := s.generator.Generate(ctx, generation.Request{Type: at, Profile: profile, Job: job})
	if err != nil {
		return nil, err
	}

	artifact := &domain.Artifact{
		UserID:   userID,
		JobID:    jobID,
		Type:     at,
		Content:  result.Content,
		Version:  "1.0",
		Approved: false,
	}
	if result.Model != "" {
		artifact.Model = &result.Model
	}
	if result.PromptVersion != "" {
		artifact.PromptVersion = &result.PromptVersion
	}

	err = s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.artifacts.WithTx(tx).Create(ctx, artifact); err != nil {
			return err
		}
		id := artifact.ID.String()
		return s.audit.Record(ctx, tx, userID, "generate_"+string(at), "artifact", &id, map[string]any{
			"type": string(at),
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("trace_id", traceID).Str("user_id", userID).Str("artifact_id", artifact.ID.String()).
		Str("type", string(at)).Msg("artifact generated")
	return artifact, nil
}

// ApproveArtifact is the only code path that ever sets approved to true.
func (s *artifactService) ApproveArtifact(ctx context.Context, traceID, userID string, artifactID uuid.UUID) (*domain.Artifact, error) {
	artifact, err := s.ownedArtifact(ctx, userID, artifactID)
	if err != nil {
		return nil, err
	}
	if artifact.Approved {
		return artifact, nil
	}

	artifact.Approved = true
	err = s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.artifacts.WithTx(tx).Update(ctx, artifact); err != nil {
			return err
		}
		id := artifact.ID.String()
		return s.audit.Record(ctx, tx, userID, "approve", "artifact", &id, nil)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("trace_id", traceID).Str("user_id", userID).Str("artifact_id", artifactID.String()).Msg("artifact approved")
	return artifact, nil
}

func (s *artifactService) ListArtifacts(ctx context.Context, userID string, limit, offset int) ([]domain.Artifact, error) {
	limit = clampLimit(limit, s.cfg.PageSizeDefault, s.cfg.PageSizeMax)
	if offset < 0 {
		offset = 0
	}
	return s.artifacts.List(ctx, userID, limit, offset)
}

func (s *artifactService) DeleteArtifact(ctx context.Context, traceID, userID string, artifactID uuid.UUID) error {
	artifact, err := s.ownedArtifact(ctx, userID, artifactID)
	if err != nil {
		return err
	}

	err = s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		id := artifact.ID.String()
		if err := s.audit.Record(ctx, tx, userID, "delete", "artifact", &id, map[string]any{
			"type": string(artifact.Type),
		}); err != nil {
			return err
		}
		return s.artifacts.WithTx(tx).Delete(ctx, artifact.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("trace_id", traceID).Str("user_id", userID).Str("artifact_id", artifactID.String()).Msg("artifact deleted")
	return nil
}

func (s *artifactService) ownedArtifact(ctx context.Context, userID string, artifactID uuid.UUID) (*domain.Artifact, error) {
	artifact, err := s.artifacts.FindByID(ctx, artifactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if artifact.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return artifact, nil
}

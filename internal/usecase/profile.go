package usecase

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/jasveersingh-de/opportunity/config"
	repo "github.com/jasveersingh-de/opportunity/internal/adapters/postgres"
	"github.com/jasveersingh-de/opportunity/internal/domain"
	pkglog "github.com/jasveersingh-de/opportunity/pkg/log"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateSettings(ctx context.Context, traceID, userID string, patch SettingsPatch) (*domain.Profile, error)
}

type SettingsPatch struct {
	PreferredCountries *[]string `json:"preferred_countries"`
	TargetRoles        *[]string `json:"target_roles"`
	Seniority          *string   `json:"seniority"`
	RemotePreference   *string   `json:"remote_preference"`
}

type profileService struct {
	cfg      *config.Config
	logger   pkglog.Logger
	profiles repo.ProfileRepository
	txm      repo.TxManager
	audit    AuditWriter
}

func NewProfileService(cfg *config.Config, logger pkglog.Logger, profiles repo.ProfileRepository, txm repo.TxManager, audit AuditWriter) ProfileService {
	return &profileService{cfg: cfg, logger: logger, profiles: profiles, txm: txm, audit: audit}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) UpdateSettings(ctx context.Context, traceID, userID string, patch SettingsPatch) (*domain.Profile, error) {
	if patch.Seniority != nil && !domain.ValidSeniority(*patch.Seniority) {
		return nil, &domain.ValidationError{Field: "seniority", Reason: "must be junior, mid, senior, lead or principal"}
	}
	if patch.RemotePreference != nil && !domain.ValidRemotePreference(*patch.RemotePreference) {
		return nil, &domain.ValidationError{Field: "remote_preference", Reason: "must be remote, hybrid, onsite or any"}
	}

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	changed := map[string]any{}
	if patch.PreferredCountries != nil {
		profile.PreferredCountries = *patch.PreferredCountries
		changed["preferred_countries"] = *patch.PreferredCountries
	}
	if patch.TargetRoles != nil {
		profile.TargetRoles = *patch.TargetRoles
		changed["target_roles"] = *patch.TargetRoles
	}
	if patch.Seniority != nil {
		profile.Seniority = patch.Seniority
		changed["seniority"] = *patch.Seniority
	}
	if patch.RemotePreference != nil {
		profile.RemotePreference = patch.RemotePreference
		changed["remote_preference"] = *patch.RemotePreference
	}

	err = s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.profiles.WithTx(tx).Update(ctx, profile); err != nil {
			return err
		}
		id := profile.ID.String()
		return s.audit.Record(ctx, tx, userID, "update", "profile", &id, changed)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("trace_id", traceID).Str("user_id", userID).Msg("profile settings updated")
	return profile, nil
}

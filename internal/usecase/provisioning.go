package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	repo "github.com/jasveersingh-de/opportunity/internal/adapters/postgres"
	"github.com/jasveersingh-de/opportunity/internal/auth"
	"github.com/jasveersingh-de/opportunity/internal/domain"
	pkglog "github.com/jasveersingh-de/opportunity/pkg/log"
)

// ProvisioningService guarantees exactly one profile per user. EnsureProfile
// is called once per completed authentication, from the HTTP session endpoint
// and from the NATS session subscriber; both paths are safe concurrently.
type ProvisioningService interface {
	EnsureProfile(ctx context.Context, traceID string, identity auth.Identity) (*domain.Profile, bool, error)
}

type provisioningService struct {
	logger   pkglog.Logger
	profiles repo.ProfileRepository
}

func NewProvisioningService(logger pkglog.Logger, profiles repo.ProfileRepository) ProvisioningService {
	return &provisioningService{logger: logger, profiles: profiles}
}

// EnsureProfile returns the existing profile untouched, or creates one from
// provider metadata. The unique index on user_id is the authoritative guard:
// a duplicate-key insert means a concurrent caller won the race, so we
// re-read instead of failing. The boolean reports whether a row was created.
func (s *provisioningService) EnsureProfile(ctx context.Context, traceID string, identity auth.Identity) (*domain.Profile, bool, error) {
	if strings.TrimSpace(identity.ID) == "" {
		return nil, false, &domain.ValidationError{Field: "user_id", Reason: "must not be empty"}
	}

	profile, err := s.profiles.FindByUserID(ctx, identity.ID)
	if err == nil {
		return profile, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, &domain.ProvisioningError{Err: err}
	}

	profile = &domain.Profile{
		UserID:             identity.ID,
		DisplayName:        deriveDisplayName(identity),
		AvatarURL:          deriveAvatarURL(identity),
		PreferredCountries: pq.StringArray{},
		TargetRoles:        pq.StringArray{},
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, ferr := s.profiles.FindByUserID(ctx, identity.ID)
			if ferr != nil {
				return nil, false, &domain.ProvisioningError{Err: ferr}
			}
			return existing, false, nil
		}
		return nil, false, &domain.ProvisioningError{Err: err}
	}

	s.logger.Info().Str("trace_id", traceID).Str("user_id", identity.ID).Msg("profile provisioned")
	return profile, true, nil
}

func deriveDisplayName(identity auth.Identity) string {
	for _, key := range []string{"full_name", "name"} {
		if v, ok := identity.Metadata[key].(string); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	if at := strings.Index(identity.Email, "@"); at > 0 {
		return identity.Email[:at]
	}
	return "User"
}

func deriveAvatarURL(identity auth.Identity) *string {
	for _, key := range []string{"avatar_url", "picture"} {
		if v, ok := identity.Metadata[key].(string); ok && strings.TrimSpace(v) != "" {
			return &v
		}
	}
	return nil
}

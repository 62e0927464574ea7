package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jasveersingh-de/opportunity/internal/usecase"
	res "github.com/jasveersingh-de/opportunity/pkg/http"
)

type ProfileHandler struct {
	provisioning usecase.ProvisioningService
	profiles     usecase.ProfileService
}

func NewProfileHandler(provisioning usecase.ProvisioningService, profiles usecase.ProfileService) *ProfileHandler {
	return &ProfileHandler{provisioning: provisioning, profiles: profiles}
}

// SessionComplete is called by the frontend once the OAuth redirect has
// finished. It is a no-op when the profile already exists.
func (h *ProfileHandler) SessionComplete(c echo.Context) error {
	identity, ok := identityFromCtx(c)
	if !ok {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing identity", requestIDFromCtx(c), nil)
	}
	profile, created, err := h.provisioning.EnsureProfile(c.Request().Context(), requestIDFromCtx(c), identity)
	if err != nil {
		return writeDomainError(c, err)
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return res.JSON(c, status, profile)
}

func (h *ProfileHandler) Get(c echo.Context) error {
	identity, ok := identityFromCtx(c)
	if !ok {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing identity", requestIDFromCtx(c), nil)
	}
	profile, err := h.profiles.GetProfile(c.Request().Context(), identity.ID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return res.JSON(c, http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateSettings(c echo.Context) error {
	identity, ok := identityFromCtx(c)
	if !ok {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing identity", requestIDFromCtx(c), nil)
	}
	patch := new(usecase.SettingsPatch)
	if err := c.Bind(patch); err != nil {
		return res.ErrorJSON(c, http.StatusBadRequest, "bad_request", "invalid payload", requestIDFromCtx(c), nil)
	}
	profile, err := h.profiles.UpdateSettings(c.Request().Context(), requestIDFromCtx(c), identity.ID, *patch)
	if err != nil {
		return writeDomainError(c, err)
	}
	return res.JSON(c, http.StatusOK, profile)
}

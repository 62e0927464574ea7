package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jasveersingh-de/opportunity/internal/adapters/http/middleware"
	"github.com/jasveersingh-de/opportunity/internal/auth"
	"github.com/jasveersingh-de/opportunity/internal/domain"
	res "github.com/jasveersingh-de/opportunity/pkg/http"
)

// writeDomainError maps the domain error taxonomy onto HTTP. Infrastructure
// failures (provisioning, audit) render a generic retry message because they
// are not the caller's fault.
func writeDomainError(c echo.Context, err error) error {
	traceID := requestIDFromCtx(c)

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return res.ErrorJSON(c, http.StatusBadRequest, "validation_error", validationErr.Error(), traceID, nil)
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return res.ErrorJSON(c, http.StatusNotFound, "not_found", "resource not found", traceID, nil)
	case errors.Is(err, domain.ErrForbidden):
		return res.ErrorJSON(c, http.StatusForbidden, "forbidden", "you do not own this resource", traceID, nil)
	case errors.Is(err, domain.ErrDuplicateApplication):
		return res.ErrorJSON(c, http.StatusConflict, "duplicate_application", "an application for this job already exists", traceID, nil)
	}

	var provErr *domain.ProvisioningError
	var auditErr *domain.AuditWriteError
	if errors.As(err, &provErr) || errors.As(err, &auditErr) {
		return res.ErrorJSON(c, http.StatusInternalServerError, "internal_error", "something went wrong, please try again", traceID, nil)
	}

	return res.ErrorJSON(c, http.StatusInternalServerError, "internal_error", "something went wrong, please try again", traceID, nil)
}

func identityFromCtx(c echo.Context) (auth.Identity, bool) {
	identity, ok := c.Get(middleware.IdentityKey).(auth.Identity)
	return identity, ok
}

func requestIDFromCtx(c echo.Context) string {
	if reqID := c.Response().Header().Get(echo.HeaderXRequestID); reqID != "" {
		return reqID
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

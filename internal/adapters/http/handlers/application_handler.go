package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jasveersingh-de/opportunity/internal/domain"
	"github.com/jasveersingh-de/opportunity/internal/usecase"
	res "github.com/jasveersingh-de/opportunity/pkg/http"
)

type ApplicationHandler struct {
	pipeline usecase.PipelineService
}

func NewApplicationHandler(pipeline usecase.PipelineService) *ApplicationHandler {
	return &ApplicationHandler{pipeline: pipeline}
}

type createApplicationRequest struct {
	JobID string `json:"job_id"`
	Notes string `json:"notes"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *ApplicationHandler) Create(c echo.Context) error {
	identity, ok := identityFromCtx(c)
	if !ok {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing identity", requestIDFromCtx(c), nil)
	}
	req := new(createApplicationRequest)
	if err := c.Bind(req); err != nil {
		return res.ErrorJSON(c, http.StatusBadRequest, "bad_request", "invalid payload", requestIDFromCtx(c), nil)
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return res.ErrorJSON(c, http.StatusBadRequest, "bad_request", "invalid job id", requestIDFromCtx(c), nil)
	}
	app, err := h.pipeline.CreateApplication(c.Request().Context(), requestIDFromCtx(c), identity.ID, jobID, req.Notes)
	if err != nil {
		return writeDomainError(c, err)
	}
	return res.JSON(c, http.StatusCreated, app)
}

func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	identity, ok := identityFromCtx(c)
	if !ok {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing identity", requestIDFromCtx(c), nil)
	}
	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return res.ErrorJSON(c, http.StatusBadRequest, "bad_request", "invalid application id", requestIDFromCtx(c), nil)
	}
	req := new(updateStatusRequest)
	if err := c.Bind(req); err != nil {
		return res.ErrorJSON(c, http.StatusBadRequest, "bad_request", "invalid payload", requestIDFromCtx(c), nil)
	}
	app, err := h.pipeline.UpdateStatus(c.Request().Context(), requestIDFromCtx(c), identity.ID, applicationID, req.Status)
	if err != nil {
		return writeDomainError(c, err)
	}
	return res.JSON(c, http.StatusOK, app)
}

func (h *ApplicationHandler) Delete(c echo.Context) error {
	identity, ok := identityFromCtx(c)
	if !ok {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing identity", requestIDFromCtx(c), nil)
	}
	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return res.ErrorJSON(c, http.StatusBadRequest, "bad_request", "invalid application id", requestIDFromCtx(c), nil)
	}
	if err := h.pipeline.DeleteApplication(c.Request().Context(), requestIDFromCtx(c), identity.ID, applicationID); err != nil {
		return writeDomainError(c, err)
	}
	return res.JSON(c, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *ApplicationHandler) List(c echo.Context) error {
	identity, ok := identityFromCtx(c)
	if !ok {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing identity", requestIDFromCtx(c), nil)
	}
	filter := domain.ApplicationFilter{
		Sort:      domain.ApplicationSort(c.QueryParam("sort")),
		Direction: domain.SortDirection(c.QueryParam("direction")),
		Limit:     queryInt(c, "limit"),
		Offset:    queryInt(c, "offset"),
	}
	if raw := c.QueryParam("status"); raw != "" {
		status := domain.Status(raw)
		filter.Status = &status
	}
	if raw := c.QueryParam("country"); raw != "" {
		filter.Country = &raw
	}
	apps, err := h.pipeline.ListApplications(c.Request().Context(), identity.ID, filter)
	if err != nil {
		return writeDomainError(c, err)
	}
	return res.JSON(c, http.StatusOK, apps)
}

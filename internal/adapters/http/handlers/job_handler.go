package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jasveersingh-de/opportunity/internal/domain"
	"github.com/jasveersingh-de/opportunity/internal/usecase"
	res "github.com/jasveersingh-de/opportunity/pkg/http"
)

type JobHandler struct {
	jobs usecase.JobService
}

func NewJobHandler(jobs usecase.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

type rankRequest struct {
	Score float64 `json:"score"`
}

func (h *JobHandler) Create(c echo.Context) error {
	identity, ok := identityFromCtx(c)
	if !ok {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing identity", requestIDFromCtx(c), nil)
	}
	input := new(usecase.JobInput)
	if err := c.Bind(input); err != nil {
		return res.ErrorJSON(c, http.StatusBadRequest, "bad_request", "invalid payload", requestIDFromCtx(c), nil)
	}
	job, err := h.jobs.CreateJob(c.Request().Context(), requestIDFromCtx(c), identity.ID, *input)
	if err != nil {
		return writeDomainError(c, err)
	}
	return res.JSON(c, http.StatusCreated, job)
}

func (h *JobHandler) Get(c echo.Context) error {
	identity, ok := identityFromCtx(c)
	if !ok {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing identity", requestIDFromCtx(c), nil)
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return res.ErrorJSON(c, http.StatusBadRequest, "bad_request", "invalid job id", requestIDFromCtx(c), nil)
	}
	job, err := h.jobs.GetJob(c.Request().Context(), identity.ID, jobID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return res.JSON(c, http.StatusOK, job)
}

func (h *JobHandler) List(c echo.Context) error {
	identity, ok := identityFromCtx(c)
	if !ok {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing identity", requestIDFromCtx(c), nil)
	}
	filter := domain.JobFilter{
		Sort:      domain.JobSort(c.QueryParam("sort")),
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
	jobs, err := h.jobs.ListJobs(c.Request().Context(), identity.ID, filter)
	if err != nil {
		return writeDomainError(c, err)
	}
	return res.JSON(c, http.StatusOK, jobs)
}

func (h *JobHandler) Update(c echo.Context) error {
	identity, ok := identityFromCtx(c)
	if !ok {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing identity", requestIDFromCtx(c), nil)
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return res.ErrorJSON(c, http.StatusBadRequest, "bad_request", "invalid job id", requestIDFromCtx(c), nil)
	}
	patch := new(usecase.JobPatch)
	if err := c.Bind(patch); err != nil {
		return res.ErrorJSON(c, http.StatusBadRequest, "bad_request", "invalid payload", requestIDFromCtx(c), nil)
	}
	job, err := h.jobs.UpdateJob(c.Request().Context(), requestIDFromCtx(c), identity.ID, jobID, *patch)
	if err != nil {
		return writeDomainError(c, err)
	}
	return res.JSON(c, http.StatusOK, job)
}

func (h *JobHandler) Delete(c echo.Context) error {
	identity, ok := identityFromCtx(c)
	if !ok {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing identity", requestIDFromCtx(c), nil)
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return res.ErrorJSON(c, http.StatusBadRequest, "bad_request", "invalid job id", requestIDFromCtx(c), nil)
	}
	if err := h.jobs.DeleteJob(c.Request().Context(), requestIDFromCtx(c), identity.ID, jobID); err != nil {
		return writeDomainError(c, err)
	}
	return res.JSON(c, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *JobHandler) Rank(c echo.Context) error {
	identity, ok := identityFromCtx(c)
	if !ok {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing identity", requestIDFromCtx(c), nil)
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return res.ErrorJSON(c, http.StatusBadRequest, "bad_request", "invalid job id", requestIDFromCtx(c), nil)
	}
	req := new(rankRequest)
	if err := c.Bind(req); err != nil {
		return res.ErrorJSON(c, http.StatusBadRequest, "bad_request", "invalid payload", requestIDFromCtx(c), nil)
	}
	job, err := h.jobs.SetRankScore(c.Request().Context(), requestIDFromCtx(c), identity.ID, jobID, req.Score)
	if err != nil {
		return writeDomainError(c, err)
	}
	return res.JSON(c, http.StatusOK, job)
}

func queryInt(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}

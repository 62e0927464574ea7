package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jasveersingh-de/opportunity/internal/usecase"
	res "github.com/jasveersingh-de/opportunity/pkg/http"
)

type ArtifactHandler struct {
	artifacts usecase.ArtifactService
}

func NewArtifactHandler(artifacts usecase.ArtifactService) *ArtifactHandler {
	return &ArtifactHandler{artifacts: artifacts}
}

type generateArtifactRequest struct {
	JobID *string `json:"job_id"`
	Type  string  `json:"type"`
}

func (h *ArtifactHandler) Generate(c echo.Context) error {
	identity, ok := identityFromCtx(c)
	if !ok {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing identity", requestIDFromCtx(c), nil)
	}
	req := new(generateArtifactRequest)
	if err := c.Bind(req); err != nil {
		return res.ErrorJSON(c, http.StatusBadRequest, "bad_request", "invalid payload", requestIDFromCtx(c), nil)
	}
	var jobID *uuid.UUID
	if req.JobID != nil {
		parsed, err := uuid.Parse(*req.JobID)
		if err != nil {
			return res.ErrorJSON(c, http.StatusBadRequest, "bad_request", "invalid job id", requestIDFromCtx(c), nil)
		}
		jobID = &parsed
	}
	artifact, err := h.artifacts.GenerateArtifact(c.Request().Context(), requestIDFromCtx(c), identity.ID, jobID, req.Type)
	if err != nil {
		return writeDomainError(c, err)
	}
	return res.JSON(c, http.StatusCreated, artifact)
}

func (h *ArtifactHandler) Approve(c echo.Context) error {
	identity, ok := identityFromCtx(c)
	if !ok {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing identity", requestIDFromCtx(c), nil)
	}
	artifactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return res.ErrorJSON(c, http.StatusBadRequest, "bad_request", "invalid artifact id", requestIDFromCtx(c), nil)
	}
	artifact, err := h.artifacts.ApproveArtifact(c.Request().Context(), requestIDFromCtx(c), identity.ID, artifactID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return res.JSON(c, http.StatusOK, artifact)
}

func (h *ArtifactHandler) List(c echo.Context) error {
	identity, ok := identityFromCtx(c)
	if !ok {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing identity", requestIDFromCtx(c), nil)
	}
	artifacts, err := h.artifacts.ListArtifacts(c.Request().Context(), identity.ID, queryInt(c, "limit"), queryInt(c, "offset"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return res.JSON(c, http.StatusOK, artifacts)
}

func (h *ArtifactHandler) Delete(c echo.Context) error {
	identity, ok := identityFromCtx(c)
	if !ok {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing identity", requestIDFromCtx(c), nil)
	}
	artifactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return res.ErrorJSON(c, http.StatusBadRequest, "bad_request", "invalid artifact id", requestIDFromCtx(c), nil)
	}
	if err := h.artifacts.DeleteArtifact(c.Request().Context(), requestIDFromCtx(c), identity.ID, artifactID); err != nil {
		return writeDomainError(c, err)
	}
	return res.JSON(c, http.StatusOK, map[string]string{"status": "deleted"})
}

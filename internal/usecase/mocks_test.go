package usecase

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	repo "github.com/jasveersingh-de/opportunity/internal/adapters/postgres"
	"github.com/jasveersingh-de/opportunity/internal/domain"
	pkglog "github.com/jasveersingh-de/opportunity/pkg/log"
)

func testLogger() pkglog.Logger {
	return pkglog.New("test", "pipeline-test")
}

type mockTxManager struct {
	err error
}

func (m *mockTxManager) Transaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(nil)
}

type auditCall struct {
	actorID      string
	action       string
	resourceType string
	resourceID   *string
	metadata     map[string]any
}

type recordingAudit struct {
	calls   []auditCall
	failErr error
}

func (a *recordingAudit) Record(_ context.Context, _ *gorm.DB, actorID, action, resourceType string, resourceID *string, metadata map[string]any) error {
	if a.failErr != nil {
		return &domain.AuditWriteError{Err: a.failErr}
	}
	a.calls = append(a.calls, auditCall{actorID: actorID, action: action, resourceType: resourceType, resourceID: resourceID, metadata: metadata})
	return nil
}

type mockProfileRepo struct {
	profiles    map[string]*domain.Profile
	createErr   error
	raceProfile *domain.Profile
	createCalls int
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: map[string]*domain.Profile{}}
}

func (r *mockProfileRepo) WithTx(_ *gorm.DB) repo.ProfileRepository { return r }

func (r *mockProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	r.createCalls++
	if r.createErr != nil {
		// Simulate losing the unique-index race: the winner's row appears
		// before the duplicate-key error reaches us.
		if r.raceProfile != nil {
			r.profiles[r.raceProfile.UserID] = r.raceProfile
		}
		return r.createErr
	}
	if _, exists := r.profiles[profile.UserID]; exists {
		return gorm.ErrDuplicatedKey
	}
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *mockProfileRepo) FindByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	if p, ok := r.profiles[userID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockProfileRepo) Update(_ context.Context, profile *domain.Profile) error {
	r.profiles[profile.UserID] = profile
	return nil
}

type mockJobRepo struct {
	jobs       map[uuid.UUID]*domain.Job
	lastFilter domain.JobFilter
}

func newMockJobRepo() *mockJobRepo {
	return &mockJobRepo{jobs: map[uuid.UUID]*domain.Job{}}
}

func (r *mockJobRepo) WithTx(_ *gorm.DB) repo.JobRepository { return r }

func (r *mockJobRepo) Create(_ context.Context, job *domain.Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	r.jobs[job.ID] = job
	return nil
}

func (r *mockJobRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Job, error) {
	if j, ok := r.jobs[id]; ok {
		return j, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockJobRepo) Update(_ context.Context, job *domain.Job) error {
	r.jobs[job.ID] = job
	return nil
}

func (r *mockJobRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.jobs, id)
	return nil
}

func (r *mockJobRepo) List(_ context.Context, userID string, f domain.JobFilter) ([]domain.Job, error) {
	r.lastFilter = f
	var out []domain.Job
	for _, j := range r.jobs {
		if j.UserID != userID {
			continue
		}
		if f.Status != nil && j.Status != *f.Status {
			continue
		}
		out = append(out, *j)
	}
	return out, nil
}

type mockApplicationRepo struct {
	apps       map[uuid.UUID]*domain.Application
	lastFilter domain.ApplicationFilter
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{apps: map[uuid.UUID]*domain.Application{}}
}

func (r *mockApplicationRepo) WithTx(_ *gorm.DB) repo.ApplicationRepository { return r }

func (r *mockApplicationRepo) Create(_ context.Context, app *domain.Application) error {
	for _, existing := range r.apps {
		if existing.UserID == app.UserID && existing.JobID == app.JobID {
			return gorm.ErrDuplicatedKey
		}
	}
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	r.apps[app.ID] = app
	return nil
}

func (r *mockApplicationRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Application, error) {
	if a, ok := r.apps[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockApplicationRepo) FindByUserAndJob(_ context.Context, userID string, jobID uuid.UUID) (*domain.Application, error) {
	for _, a := range r.apps {
		if a.UserID == userID && a.JobID == jobID {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockApplicationRepo) Update(_ context.Context, app *domain.Application) error {
	r.apps[app.ID] = app
	return nil
}

func (r *mockApplicationRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.apps, id)
	return nil
}

func (r *mockApplicationRepo) List(_ context.Context, userID string, f domain.ApplicationFilter) ([]domain.Application, error) {
	r.lastFilter = f
	var out []domain.Application
	for _, a := range r.apps {
		if a.UserID != userID {
			continue
		}
		if f.Status != nil && a.Status != *f.Status {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

type mockArtifactRepo struct {
	artifacts map[uuid.UUID]*domain.Artifact
}

func newMockArtifactRepo() *mockArtifactRepo {
	return &mockArtifactRepo{artifacts: map[uuid.UUID]*domain.Artifact{}}
}

func (r *mockArtifactRepo) WithTx(_ *gorm.DB) repo.ArtifactRepository { return r }

func (r *mockArtifactRepo) Create(_ context.Context, artifact *domain.Artifact) error {
	if artifact.ID == uuid.Nil {
		artifact.ID = uuid.New()
	}
	r.artifacts[artifact.ID] = artifact
	return nil
}

func (r *mockArtifactRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Artifact, error) {
	if a, ok := r.artifacts[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockArtifactRepo) Update(_ context.Context, artifact *domain.Artifact) error {
	r.artifacts[artifact.ID] = artifact
	return nil
}

func (r *mockArtifactRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.artifacts, id)
	return nil
}

func (r *mockArtifactRepo) List(_ context.Context, userID string, _, _ int) ([]domain.Artifact, error) {
	var out []domain.Artifact
	for _, a := range r.artifacts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

type mockAuditRepo struct {
	entries   []domain.AuditLogEntry
	appendErr error
}

func (r *mockAuditRepo) WithTx(_ *gorm.DB) repo.AuditRepository { return r }

func (r *mockAuditRepo) Append(_ context.Context, entry *domain.AuditLogEntry) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *mockAuditRepo) ListByActor(_ context.Context, actorID string, _, _ int) ([]domain.AuditLogEntry, error) {
	var out []domain.AuditLogEntry
	for _, e := range r.entries {
		if e.ActorID != nil && *e.ActorID == actorID {
			out = append(out, e)
		}
	}
	return out, nil
}

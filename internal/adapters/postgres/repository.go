package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jasveersingh-de/opportunity/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	WithTx(tx *gorm.DB) ProfileRepository
}

type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID string, f domain.JobFilter) ([]domain.Job, error)
	WithTx(tx *gorm.DB) JobRepository
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	FindByUserAndJob(ctx context.Context, userID string, jobID uuid.UUID) (*domain.Application, error)
	Update(ctx context.Context, app *domain.Application) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID string, f domain.ApplicationFilter) ([]domain.Application, error)
	WithTx(tx *gorm.DB) ApplicationRepository
}

type ArtifactRepository interface {
	Create(ctx context.Context, artifact *domain.Artifact) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Artifact, error)
	Update(ctx context.Context, artifact *domain.Artifact) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID string, limit, offset int) ([]domain.Artifact, error)
	WithTx(tx *gorm.DB) ArtifactRepository
}

type profileRepo struct{ db *gorm.DB }

type jobRepo struct{ db *gorm.DB }

type applicationRepo struct{ db *gorm.DB }

type artifactRepo struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) ProfileRepository { return &profileRepo{db: db} }
func NewJobRepository(db *gorm.DB) JobRepository         { return &jobRepo{db: db} }
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}
func NewArtifactRepository(db *gorm.DB) ArtifactRepository { return &artifactRepo{db: db} }

func (r *profileRepo) WithTx(tx *gorm.DB) ProfileRepository {
	if tx == nil {
		return r
	}
	return &profileRepo{db: tx}
}

func (r *profileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepo) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *jobRepo) WithTx(tx *gorm.DB) JobRepository {
	if tx == nil {
		return r
	}
	return &jobRepo{db: tx}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	var job domain.Job
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *jobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Job{}, "id = ?", id).Error
}

func (r *jobRepo) List(ctx context.Context, userID string, f domain.JobFilter) ([]domain.Job, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Country != nil {
		q = q.Where("country_code = ?", *f.Country)
	}
	switch f.Sort {
	case domain.JobSortRank:
		q = q.Order(fmt.Sprintf("rank_score %s NULLS LAST", f.Direction.SQL()))
	default:
		q = q.Order("created_at " + f.Direction.SQL())
	}
	var jobs []domain.Job
	if err := q.Limit(f.Limit).Offset(f.Offset).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *applicationRepo) WithTx(tx *gorm.DB) ApplicationRepository {
	if tx == nil {
		return r
	}
	return &applicationRepo{db: tx}
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *applicationRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	var app domain.Application
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) FindByUserAndJob(ctx context.Context, userID string, jobID uuid.UUID) (*domain.Application, error) {
	var app domain.Application
	if err := r.db.WithContext(ctx).Where("user_id = ? AND job_id = ?", userID, jobID).First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) Update(ctx context.Context, app *domain.Application) error {
	return r.db.WithContext(ctx).Save(app).Error
}

func (r *applicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Application{}, "id = ?", id).Error
}

// statusOrderExpr mirrors domain.Status.Order for SQL-side sorting.
const statusOrderExpr = `CASE applications.status
	WHEN 'saved' THEN 0
	WHEN 'applied' THEN 1
	WHEN 'interview' THEN 2
	WHEN 'offer' THEN 3
	ELSE 4 END`

func (r *applicationRepo) List(ctx context.Context, userID string, f domain.ApplicationFilter) ([]domain.Application, error) {
	q := r.db.WithContext(ctx).Model(&domain.Application{}).Where("applications.user_id = ?", userID)
	if f.Status != nil {
		q = q.Where("applications.status = ?", *f.Status)
	}
	if f.Country != nil {
		q = q.Joins("JOIN jobs ON jobs.id = applications.job_id").Where("jobs.country_code = ?", *f.Country)
	}
	switch f.Sort {
	case domain.ApplicationSortStatus:
		q = q.Order(statusOrderExpr + " " + f.Direction.SQL())
	default:
		q = q.Order("applications.created_at " + f.Direction.SQL())
	}
	var apps []domain.Application
	if err := q.Limit(f.Limit).Offset(f.Offset).Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *artifactRepo) WithTx(tx *gorm.DB) ArtifactRepository {
	if tx == nil {
		return r
	}
	return &artifactRepo{db: tx}
}

func (r *artifactRepo) Create(ctx context.Context, artifact *domain.Artifact) error {
	return r.db.WithContext(ctx).Create(artifact).Error
}

func (r *artifactRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Artifact, error) {
	var artifact domain.Artifact
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&artifact).Error; err != nil {
		return nil, err
	}
	return &artifact, nil
}

func (r *artifactRepo) Update(ctx context.Context, artifact *domain.Artifact) error {
	return r.db.WithContext(ctx).Save(artifact).Error
}

func (r *artifactRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Artifact{}, "id = ?", id).Error
}

func (r *artifactRepo) List(ctx context.Context, userID string, limit, offset int) ([]domain.Artifact, error) {
	var artifacts []domain.Artifact
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&artifacts).Error
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

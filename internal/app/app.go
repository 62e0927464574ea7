package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/labstack/echo/v4"
	nats "github.com/nats-io/nats.go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/jasveersingh-de/opportunity/config"
	"github.com/jasveersingh-de/opportunity/internal/adapters/generation"
	httpadapter "github.com/jasveersingh-de/opportunity/internal/adapters/http"
	"github.com/jasveersingh-de/opportunity/internal/adapters/http/handlers"
	authmw "github.com/jasveersingh-de/opportunity/internal/adapters/http/middleware"
	natsadapter "github.com/jasveersingh-de/opportunity/internal/adapters/nats"
	repo "github.com/jasveersingh-de/opportunity/internal/adapters/postgres"
	"github.com/jasveersingh-de/opportunity/internal/auth"
	"github.com/jasveersingh-de/opportunity/internal/domain"
	"github.com/jasveersingh-de/opportunity/internal/usecase"
	pkglog "github.com/jasveersingh-de/opportunity/pkg/log"
)

type App struct {
	cfg      *config.Config
	logger   pkglog.Logger
	db       *gorm.DB
	natsConn *nats.Conn
	echo     *echo.Echo
}

func New(ctx context.Context) (*App, error) {
	cfg := config.MustLoad()
	logger := pkglog.New(cfg.AppEnv, cfg.AppName)

	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&domain.Profile{},
		&domain.Job{},
		&domain.Application{},
		&domain.Artifact{},
		&domain.AuditLogEntry{},
	); err != nil {
		return nil, err
	}

	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		logger.Warn().Err(err).Msg("nats connect failed, session subscription disabled")
		nc = nil
	}

	profileRepo := repo.NewProfileRepository(db)
	jobRepo := repo.NewJobRepository(db)
	applicationRepo := repo.NewApplicationRepository(db)
	artifactRepo := repo.NewArtifactRepository(db)
	auditRepo := repo.NewAuditRepository(db)
	txm := repo.NewTxManager(db)

	generator := generation.NewHTTPClient(cfg.GenerationURL, cfg.GenerationTimeout)

	audit := usecase.NewAuditWriter(logger, auditRepo)
	provisioning := usecase.NewProvisioningService(logger, profileRepo)
	profiles := usecase.NewProfileService(cfg, logger, profileRepo, txm, audit)
	jobs := usecase.NewJobService(cfg, logger, jobRepo, txm, audit)
	pipeline := usecase.NewPipelineService(cfg, logger, jobRepo, applicationRepo, txm, audit)
	artifacts := usecase.NewArtifactService(cfg, logger, artifactRepo, profileRepo, jobRepo, generator, txm, audit)

	parser, err := auth.NewParser(cfg)
	if err != nil {
		return nil, err
	}
	mw := authmw.NewAuthMiddleware(parser)

	router := httpadapter.NewRouter(
		cfg,
		handlers.NewProfileHandler(provisioning, profiles),
		handlers.NewJobHandler(jobs),
		handlers.NewApplicationHandler(pipeline),
		handlers.NewArtifactHandler(artifacts),
		mw.Handler,
	)

	if nc != nil {
		sessionHandler := natsadapter.NewSessionHandler(provisioning)
		if err := sessionHandler.Subscribe(nc, cfg.NATSSessionSubject, cfg.AppName); err != nil {
			logger.Warn().Err(err).Msg("nats subscribe failed")
		}
	}

	e := echo.New()
	router.Setup(e)

	return &App{cfg: cfg, logger: logger, db: db, natsConn: nc, echo: e}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.echo.Shutdown(shutdownCtx)
	}()
	go func() {
		errCh <- a.echo.Start(fmt.Sprintf("%s:%s", a.cfg.HTTPHost, a.cfg.HTTPPort))
	}()
	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) Close() {
	if a.natsConn != nil {
		_ = a.natsConn.Drain()
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

func openDB(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	var db *gorm.DB
	connect := func() error {
		var err error
		db, err = gorm.Open(postgres.Open(buildDSN(cfg)), &gorm.Config{
			Logger:         loggerForGorm(cfg),
			NamingStrategy: schema.NamingStrategy{SingularTable: false},
			TranslateError: true,
		})
		return err
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(connect, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return db, nil
}

func buildDSN(cfg *config.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s", cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
}

func loggerForGorm(cfg *config.Config) logger.Interface {
	level := logger.Silent
	switch cfg.AppEnv {
	case "local":
		level = logger.Info
	default:
		level = logger.Warn
	}
	return logger.Default.LogMode(level)
}

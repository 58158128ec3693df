// Command server runs the questions HTTP API.
//
// @title       Questions API
// @version     1.0
// @description In-memory question store with range pagination.
// @BasePath    /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-qa-backend/internal/config"
	"github.com/tbourn/go-qa-backend/internal/domain"
	httpapi "github.com/tbourn/go-qa-backend/internal/http"
	"github.com/tbourn/go-qa-backend/internal/observability"
	"github.com/tbourn/go-qa-backend/internal/repo"
	"github.com/tbourn/go-qa-backend/internal/services"
	"github.com/tbourn/go-qa-backend/internal/sysutil"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	sysutil.SetupLogger(os.Stdout, cfg.LogLevel, cfg.LogPretty)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appVersion := sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version)
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, appVersion)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	seed, err := loadSeed(ctx, cfg.Seed)
	if err != nil {
		log.Fatal().Err(err).Msg("seed load failed")
	}

	store := repo.NewQuestionStore(seed)
	svc := services.NewQuestionService(store)

	r := gin.New()
	httpapi.RegisterRoutes(r, svc, cfg)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("version", appVersion).
			Int("questions", store.Len()).
			Str("base_path", cfg.APIBasePath).
			Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("otel shutdown")
	}
	log.Info().Msg("bye")
}

// loadSeed builds the initial question set: the JSON file at sc.Path (or the
// embedded seed), with rows of the SQLite database at sc.DBPath merged on top.
func loadSeed(ctx context.Context, sc config.SeedConfig) (map[domain.QuestionID]domain.Question, error) {
	var (
		base map[domain.QuestionID]domain.Question
		err  error
	)
	if sc.Path != "" {
		base, err = repo.LoadSeedFile(sc.Path)
	} else {
		base, err = repo.DefaultSeed()
	}
	if err != nil {
		return nil, err
	}
	if sc.DBPath == "" {
		return base, nil
	}

	rows, err := repo.ImportSeedSQLite(ctx, sc.DBPath)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", sc.DBPath).Int("rows", len(rows)).Msg("sqlite seed imported")
	return repo.MergeSeeds(base, rows), nil
}

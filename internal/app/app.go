package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Skufu/GoPredict/internal/classifier"
	"github.com/Skufu/GoPredict/internal/config"
	"github.com/Skufu/GoPredict/internal/predict"
	"github.com/Skufu/GoPredict/internal/recommend"
	"github.com/Skufu/GoPredict/internal/symptoms"
)

// HealthChecker is anything readiness probes can ping.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App owns the state built once at startup: vocabulary, model and tables.
// Nothing in it changes until Close.
type App struct {
	Service *predict.Service

	checks  map[string]HealthChecker
	closers []func() error
}

// New loads everything a prediction needs. Any failure here is fatal for the
// caller; partially opened resources are released before returning.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (_ *App, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{checks: map[string]HealthChecker{}}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	vocab := symptoms.Default()
	if cfg.VocabularyPath != "" {
		vocab, err = symptoms.LoadFile(cfg.VocabularyPath)
		if err != nil {
			return nil, err
		}
	}

	var source recommend.Source
	switch cfg.Tables.Source {
	case config.SourcePostgres:
		pool, err := connectDB(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		a.closers = append(a.closers, func() error { pool.Close(); return nil })
		a.checks["db"] = pool
		source = recommend.NewPostgresSource(pool, logger.With("component", "tables.postgres"))
	default:
		source = recommend.NewCSVSource(cfg.Tables.Dir, cfg.Tables.Files, logger.With("component", "tables.csv"))
	}

	tables, err := recommend.Load(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("load reference tables: %w", err)
	}
	logger.Info("reference tables loaded", "source", cfg.Tables.Source, "sizes", tables.Sizes())

	model, err := openClassifier(ctx, cfg.Classifier, vocab, a)
	if err != nil {
		return nil, fmt.Errorf("load classifier: %w", err)
	}
	logger.Info("classifier ready", "backend", cfg.Classifier.Backend, "features", vocab.Len())

	a.Service = predict.NewService(predict.Deps{
		Vocabulary: vocab,
		Classifier: model,
		Tables:     tables,
		Logger:     logger.With("component", "predict"),
	})
	return a, nil
}

func openClassifier(ctx context.Context, cfg config.ClassifierConfig, vocab *symptoms.Vocabulary, a *App) (classifier.Classifier, error) {
	switch cfg.Backend {
	case config.BackendHTTP:
		remote := classifier.NewRemote(cfg.URL, cfg.APIKey, vocab.Names(), cfg.Timeout)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := remote.Ping(pingCtx); err != nil {
			return nil, fmt.Errorf("model service unreachable: %w", err)
		}
		a.checks["classifier"] = remote
		return remote, nil
	case config.BackendONNX:
		model, err := classifier.NewONNX(cfg.ONNX, vocab.Len())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, model.Close)
		return model, nil
	default:
		return nil, fmt.Errorf("unknown classifier backend %q", cfg.Backend)
	}
}

func connectDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, nil
}

// Checks returns the dependencies readiness should ping, keyed by name.
func (a *App) Checks() map[string]HealthChecker {
	out := make(map[string]HealthChecker, len(a.checks))
	for k, v := range a.checks {
		out[k] = v
	}
	return out
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/studytrack/internal/adapter/filestore"
	"github.com/heartmarshall/studytrack/internal/adapter/postgres"
	"github.com/heartmarshall/studytrack/internal/adapter/sqlite"
	"github.com/heartmarshall/studytrack/internal/config"
	"github.com/heartmarshall/studytrack/internal/content"
	"github.com/heartmarshall/studytrack/internal/domain"
	"github.com/heartmarshall/studytrack/internal/service/backup"
	"github.com/heartmarshall/studytrack/internal/service/problemlog"
	"github.com/heartmarshall/studytrack/internal/service/progress"
	"github.com/heartmarshall/studytrack/internal/service/study"
	"github.com/heartmarshall/studytrack/internal/service/study/fsrs"
)

// recordStore is what every storage backend provides to the services.
type recordStore interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

// App holds the loaded services for one process.
type App struct {
	Config   *config.Config
	Log      *slog.Logger
	Location *time.Location
	Cards    []domain.Flashcard

	Reviews  *study.Service
	Problems *problemlog.Service
	Progress *progress.Service
	Backup   *backup.Service

	close func() error
}

// Open connects the configured storage backend, builds the services and
// loads their records concurrently. The caller must Close the App.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	log.InfoContext(ctx, "starting application",
		slog.String("version", BuildVersion()),
		slog.String("storage", cfg.Storage.Driver),
		slog.String("log_level", cfg.Log.Level),
	)

	loc := study.ParseTimezone(cfg.Study.Timezone)

	store, closeStore, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	params := fsrs.ParametersFromConfig(cfg.SRS.Domain(), fsrs.DefaultWeights)
	reviews, err := study.NewService(log, store, params, loc)
	if err != nil {
		_ = closeStore()
		return nil, err
	}
	problems := problemlog.NewService(log, store)
	prog := progress.NewService(log, store, loc)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return reviews.Load(gctx) })
	g.Go(func() error { return problems.Load(gctx) })
	g.Go(func() error { return prog.Load(gctx) })
	if err := g.Wait(); err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("load records: %w", err)
	}

	cards, err := loadCards(cfg.Study.ContentFile, log)
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	return &App{
		Config:   cfg,
		Log:      log,
		Location: loc,
		Cards:    cards,
		Reviews:  reviews,
		Problems: problems,
		Progress: prog,
		Backup:   backup.NewService(log, reviews, problems, prog),
		close:    closeStore,
	}, nil
}

// Close releases the storage backend.
func (a *App) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}

func openStore(ctx context.Context, cfg config.StorageConfig) (recordStore, func() error, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.DriverPostgres:
		if err := postgres.Migrate(ctx, cfg.Postgres.DSN); err != nil {
			return nil, nil, err
		}
		pool, err := postgres.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewRecordRepo(pool), func() error { pool.Close(); return nil }, nil
	default:
		return filestore.New(cfg.Dir), func() error { return nil }, nil
	}
}

// loadCards reads the deck. A missing deck file yields an empty deck so
// problem log and progress commands still work.
func loadCards(path string, log *slog.Logger) ([]domain.Flashcard, error) {
	cards, err := content.LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn("flashcard deck not found, continuing without cards", slog.String("path", path))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}
	log.Debug("flashcard deck loaded", slog.String("path", path), slog.Int("cards", len(cards)))
	return cards, nil
}

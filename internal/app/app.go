package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ajarov/minesweep/internal/config"
	"github.com/ajarov/minesweep/internal/middleware"
	"github.com/ajarov/minesweep/internal/records"
	"github.com/ajarov/minesweep/internal/session"
	"github.com/ajarov/minesweep/internal/store"
)

const storeBucket = "minesweep"

type App struct {
	log      *logrus.Logger
	router   *http.ServeMux
	db       *sql.DB
	tracker  *records.Tracker
	sessions *session.Registry
}

func New(log *logrus.Logger) *App {
	return &App{
		log:      log,
		router:   http.NewServeMux(),
		sessions: session.NewRegistry(),
	}
}

// Start opens the store, mounts routes and serves until ctx is
// canceled.
func (a *App) Start(ctx context.Context) error {
	path := config.StorePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("unable to create data dir: %w", err)
	}
	kv, db, err := store.Open(path, storeBucket)
	if err != nil {
		return fmt.Errorf("unable to open store: %w", err)
	}
	a.db = db
	defer a.db.Close()

	a.tracker = records.NewTracker(a.log, kv)
	a.loadRoutes()

	server := &http.Server{
		Addr: config.Addr(),
		Handler: middleware.Wrap(
			a.router,
			middleware.Cors(),
			middleware.Logging(a.log),
		),
	}

	a.log.WithField("addr", server.Addr).Info("ready to serve")

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe()
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), 30*time.Second,
		)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

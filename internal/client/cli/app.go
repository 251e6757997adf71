package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/bookshelf/internal/client/client"
	"github.com/dmitrijs2005/bookshelf/internal/client/config"
	"github.com/dmitrijs2005/bookshelf/internal/client/repositories/snapshot"
	"github.com/dmitrijs2005/bookshelf/internal/client/session"
	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/filex"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
)

type App struct {
	config    *config.Config
	store     session.SessionStore
	persister *session.Persister
	snapshots *snapshot.SQLiteStorage
	db        *sql.DB
	logger    logging.Logger
	reader    *bufio.Reader
	out       io.Writer
}

// NewApp opens the local database, restores the saved session and wires
// the HTTP client. Call Close when done.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	dbPath, err := filex.EnsureParentDir(c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("prepare database directory: %w", err)
	}

	db, err := client.InitDatabase(ctx, dbPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", dbPath, "error", err)
		return nil, err
	}

	api := client.NewHTTPClient(c.APIBaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithRetry(c.RetryAttempts, c.RetryDelay),
		client.WithLogger(logger.With("component", "api")),
	)

	storage := snapshot.NewSQLiteStorage(db, common.SessionStorageKey)
	store, persister := session.Open(ctx, api, storage, logger.With("component", "session"),
		session.WithRules(c.Rules()),
	)

	return &App{
		config:    c,
		store:     store,
		persister: persister,
		snapshots: storage,
		db:        db,
		logger:    logger,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}, nil
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to bookshelf (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close stops persisting and releases the database.
func (a *App) Close() error {
	if a.persister != nil {
		a.persister.Detach()
	}
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.store.State().IsAuthenticated
}

// reportError prints the store's pending error message once.
func (a *App) reportError() {
	if msg := a.store.State().Error; msg != "" {
		printlnFn("Error:", msg)
		a.store.ClearError()
	}
}

package session

import (
	"context"
	"encoding/json"
	"reflect"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/client/client"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/dmitrijs2005/bookshelf/internal/redact"
)

// Storage keeps one opaque session record.
type Storage interface {
	Load(ctx context.Context) ([]byte, bool, error)
	Save(ctx context.Context, data []byte) error
	Remove(ctx context.Context) error
}

// defaultWriteTimeout bounds a single storage write triggered by a commit.
const defaultWriteTimeout = 5 * time.Second

// Persister mirrors the durable part of a Store into Storage.
type Persister struct {
	storage      Storage
	logger       logging.Logger
	writeTimeout time.Duration
	detach       func()
}

// Attach restores store from storage and then writes every commit that
// changes the snapshot. A missing, unreadable or corrupt record leaves
// store logged out. Storage failures are logged, never returned.
func Attach(ctx context.Context, store *Store, storage Storage, logger logging.Logger) *Persister {
	if logger == nil {
		logger = logging.Nop()
	}
	p := &Persister{
		storage:      storage,
		logger:       logger.With("component", "session-persister"),
		writeTimeout: defaultWriteTimeout,
	}

	if snap, ok := p.load(ctx); ok {
		st := snap.State()
		store.hydrate(st)
		if exp, ok := tokenExpiry(st.Token); ok && exp.Before(store.now()) {
			p.logger.Info(ctx, "restored session token has expired", "expired_at", exp)
		}
		p.logger.Debug(ctx, "session restored", "authenticated", st.IsAuthenticated, "token", redact.Token(st.Token))
	}

	p.detach = store.Subscribe(p.onCommit)
	return p
}

// Open builds a store and attaches storage to it in one step.
func Open(ctx context.Context, api client.Client, storage Storage, logger logging.Logger, opts ...Option) (*Store, *Persister) {
	if logger != nil {
		opts = append([]Option{WithLogger(logger)}, opts...)
	}
	store := NewStore(api, opts...)
	return store, Attach(ctx, store, storage, logger)
}

// Detach stops mirroring commits. It is safe to call more than once.
func (p *Persister) Detach() {
	if p.detach != nil {
		p.detach()
		p.detach = nil
	}
}

func (p *Persister) load(ctx context.Context) (models.Snapshot, bool) {
	data, found, err := p.storage.Load(ctx)
	if err != nil {
		p.logger.Warn(ctx, "reading session snapshot failed, starting logged out", "error", err)
		return models.Snapshot{}, false
	}
	if !found || len(data) == 0 {
		return models.Snapshot{}, false
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		p.logger.Warn(ctx, "session snapshot is corrupt, starting logged out", "error", err)
		return models.Snapshot{}, false
	}
	return snap, true
}

// onCommit runs under the store lock, so writes land in commit order.
func (p *Persister) onCommit(prev, next models.State) {
	before, after := prev.Snapshot(), next.Snapshot()
	if reflect.DeepEqual(before, after) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
	defer cancel()

	if after.IsZero() {
		if err := p.storage.Remove(ctx); err != nil {
			p.logger.Error(ctx, "removing session snapshot failed", "error", err)
		}
		return
	}

	data, err := json.Marshal(after)
	if err != nil {
		p.logger.Error(ctx, "encoding session snapshot failed", "error", err)
		return
	}
	if err := p.storage.Save(ctx, data); err != nil {
		p.logger.Error(ctx, "writing session snapshot failed", "error", err)
	}
}

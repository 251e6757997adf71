// Package snapshot stores the serialized session snapshot in the local
// metadata table.
package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bookshelf/internal/dbx"
)

// savedAtSuffix names the companion key holding the last write time.
const savedAtSuffix = ":saved_at"

// SQLiteStorage keeps one snapshot record under key plus the time it was
// written. Both keys change together.
type SQLiteStorage struct {
	db  *sql.DB
	key string
	now func() time.Time
}

func NewSQLiteStorage(db *sql.DB, key string) *SQLiteStorage {
	return &SQLiteStorage{db: db, key: key, now: time.Now}
}

// Load returns the stored record; found is false when nothing was saved.
func (s *SQLiteStorage) Load(ctx context.Context) ([]byte, bool, error) {
	data, found, err := metadata.NewSQLiteRepository(s.db).Get(ctx, s.key)
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot: %w", err)
	}
	return data, found, nil
}

func (s *SQLiteStorage) Save(ctx context.Context, data []byte) error {
	savedAt := s.now().UTC().Format(time.RFC3339Nano)
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, s.key, data); err != nil {
			return err
		}
		return repo.Set(ctx, s.key+savedAtSuffix, []byte(savedAt))
	})
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Remove deletes the record. Removing an absent record is not an error.
func (s *SQLiteStorage) Remove(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, s.key); err != nil {
			return err
		}
		return repo.Delete(ctx, s.key+savedAtSuffix)
	})
	if err != nil {
		return fmt.Errorf("remove snapshot: %w", err)
	}
	return nil
}

// SavedAt reports when the record was last written.
func (s *SQLiteStorage) SavedAt(ctx context.Context) (time.Time, bool, error) {
	raw, found, err := metadata.NewSQLiteRepository(s.db).Get(ctx, s.key+savedAtSuffix)
	if err != nil || !found {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339Nano, string(raw))
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse saved_at: %w", err)
	}
	return t, true, nil
}

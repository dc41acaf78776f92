package favorites

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/status-im/coin-browser/events"
	"github.com/status-im/coin-browser/metrics"
)

const queryTimeout = 5 * time.Second

// SQLiteStore persists favorites in a sqlite database and serves reads from memory
type SQLiteStore struct {
	db     *sql.DB
	set    *idSet
	logger *zap.Logger
}

// NewSQLiteStore opens dbPath, creating the schema when needed, and loads
// the stored favorites
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open favorites database: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{
		db:     db,
		set:    newIDSet(),
		logger: logger.Named("favorites"),
	}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	if err := store.load(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `CREATE TABLE IF NOT EXISTS favorites (
		coin_id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL
	);`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to exec query %s: %w", query, err)
	}
	return nil
}

func (s *SQLiteStore) load() error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT coin_id FROM favorites`)
	if err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}
	defer rows.Close()

	s.set.mu.Lock()
	defer s.set.mu.Unlock()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan favorite: %w", err)
		}
		s.set.ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	metrics.RecordFavoritesCount(len(s.set.ids))
	s.logger.Info("loaded favorites", zap.Int("count", len(s.set.ids)))
	return nil
}

func (s *SQLiteStore) Contains(id string) bool {
	return s.set.contains(id)
}

// Toggle flips membership of id. The row is written before memory changes,
// so a failed write leaves the favorite unchanged.
func (s *SQLiteStore) Toggle(id string) (bool, error) {
	nowFavorite, err := s.set.toggle(id, func(nowFavorite bool) error {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		if nowFavorite {
			_, err := s.db.ExecContext(ctx,
				`INSERT INTO favorites (coin_id, created_at) VALUES (?, ?) ON CONFLICT(coin_id) DO NOTHING`,
				id, time.Now().UTC())
			return err
		}
		_, err := s.db.ExecContext(ctx, `DELETE FROM favorites WHERE coin_id = ?`, id)
		return err
	})
	if err != nil {
		s.logger.Error("failed to toggle favorite", zap.String("coin_id", id), zap.Error(err))
		return nowFavorite, fmt.Errorf("failed to toggle favorite %s: %w", id, err)
	}

	s.logger.Debug("toggled favorite", zap.String("coin_id", id), zap.Bool("favorite", nowFavorite))
	return nowFavorite, nil
}

func (s *SQLiteStore) IDs() []string {
	return s.set.sorted()
}

func (s *SQLiteStore) Subscribe() events.ISubscription[[]string] {
	return s.set.subs.Subscribe()
}

// Start implements core.Interface
func (s *SQLiteStore) Start(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Stop implements core.Interface
func (s *SQLiteStore) Stop() {
	if err := s.db.Close(); err != nil {
		s.logger.Warn("failed to close favorites database", zap.Error(err))
	}
}

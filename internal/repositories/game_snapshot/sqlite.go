package gamesnapshot

import (
	"context"
	"database/sql"
	stderrors "errors"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/KirkDiggler/cluedo-engine/internal/errors"
	"github.com/KirkDiggler/cluedo-engine/internal/pkg/clock"
)

const createSnapshotsTable = `CREATE TABLE IF NOT EXISTS game_snapshots (
	game_id             TEXT PRIMARY KEY,
	data                TEXT NOT NULL,
	player_character_id TEXT NOT NULL DEFAULT '',
	current_turn        TEXT NOT NULL DEFAULT '',
	game_over           INTEGER NOT NULL DEFAULT 0,
	saved_at            INTEGER NOT NULL
)`

const snapshotColumns = `game_id, data, player_character_id, current_turn, game_over, saved_at`

// SQLiteConfig holds the configuration for the SQLite repository
type SQLiteConfig struct {
	// Path of the database file; ":memory:" works for throwaway stores
	Path  string
	Clock clock.Clock
}

// Validate ensures the configuration is usable
func (c *SQLiteConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument(errConfigNil)
	}
	if strings.TrimSpace(c.Path) == "" {
		return errors.InvalidArgument(errPathEmpty)
	}
	return nil
}

// SQLiteRepository keeps snapshots in a single SQLite table
type SQLiteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

var _ Repository = (*SQLiteRepository)(nil)

// NewSQLite opens (creating if needed) the database at cfg.Path. Close
// releases it.
func NewSQLite(ctx context.Context, cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	dsn := cfg.Path
	if dsn != ":memory:" {
		dsn = filepath.Clean(dsn) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to open sqlite db")
	}
	// one connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to ping sqlite db")
	}
	if _, err := db.ExecContext(ctx, createSnapshotsTable); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to create snapshot table")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &SQLiteRepository{db: db, clock: c}, nil
}

// Close closes the database handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

// Save upserts the snapshot
func (r *SQLiteRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if msg := validateSnapshot(input.Snapshot); msg != "" {
		return nil, errors.InvalidArgument(msg)
	}

	snapshot := *input.Snapshot
	snapshot.SavedAt = fromMillis(toMillis(r.clock.Now()))

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO game_snapshots (`+snapshotColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(game_id) DO UPDATE SET
		   data = excluded.data,
		   player_character_id = excluded.player_character_id,
		   current_turn = excluded.current_turn,
		   game_over = excluded.game_over,
		   saved_at = excluded.saved_at`,
		snapshot.GameID,
		snapshot.Data,
		snapshot.PlayerCharacterID,
		snapshot.CurrentTurn,
		snapshot.GameOver,
		toMillis(snapshot.SavedAt),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save snapshot %s", snapshot.GameID)
	}

	return &SaveOutput{Snapshot: &snapshot}, nil
}

// Get retrieves a snapshot by game ID
func (r *SQLiteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+snapshotColumns+` FROM game_snapshots WHERE game_id = ?`, input.GameID)

	snapshot, err := scanSnapshot(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("snapshot for game %s not found", input.GameID).
				WithMeta("game_id", input.GameID)
		}
		return nil, errors.Wrapf(err, "failed to get snapshot %s", input.GameID)
	}

	return &GetOutput{Snapshot: snapshot}, nil
}

// Delete removes a snapshot
func (r *SQLiteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM game_snapshots WHERE game_id = ?`, input.GameID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete snapshot %s", input.GameID)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed to count deleted snapshots")
	}
	if affected == 0 {
		return nil, errors.NotFoundf("snapshot for game %s not found", input.GameID).
			WithMeta("game_id", input.GameID)
	}

	return &DeleteOutput{}, nil
}

// List returns snapshots, newest first
func (r *SQLiteRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if input.Limit < 0 {
		return nil, errors.InvalidArgument(errNegativeList)
	}

	query := `SELECT ` + snapshotColumns + ` FROM game_snapshots ORDER BY saved_at DESC, game_id ASC`
	args := []any{}
	if input.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, input.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list snapshots")
	}
	defer func() { _ = rows.Close() }()

	var snapshots []*Snapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan snapshot")
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate snapshots")
	}

	return &ListOutput{Snapshots: snapshots}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*Snapshot, error) {
	var (
		snapshot Snapshot
		savedAt  int64
	)
	if err := row.Scan(
		&snapshot.GameID,
		&snapshot.Data,
		&snapshot.PlayerCharacterID,
		&snapshot.CurrentTurn,
		&snapshot.GameOver,
		&savedAt,
	); err != nil {
		return nil, err
	}
	snapshot.SavedAt = fromMillis(savedAt)
	return &snapshot, nil
}

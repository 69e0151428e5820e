package storage

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/domain"
	"cognitive-intel/internal/intel"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS intel_snapshots (
	snapshot_id TEXT PRIMARY KEY,
	seed        INTEGER NOT NULL,
	tick        INTEGER NOT NULL,
	created_at  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS intel_records (
	snapshot_id TEXT NOT NULL,
	entity_id   INTEGER NOT NULL,
	player_id   INTEGER NOT NULL,
	policy      INTEGER NOT NULL,
	coverage    INTEGER NOT NULL,
	floor       INTEGER NOT NULL,
	PRIMARY KEY (snapshot_id, entity_id, player_id),
	FOREIGN KEY (snapshot_id) REFERENCES intel_snapshots(snapshot_id)
);
`

// SQLiteStore хранит снимки в одной базе SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore открывает (или создает) базу intel.db в каталоге dir.
func NewSQLiteStore(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return OpenSQLite(filepath.Join(dir, "intel.db"))
}

// OpenSQLite открывает базу по пути и прогоняет миграции.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save пишет снимок и все его записи одной транзакцией.
func (s *SQLiteStore) Save(ctx context.Context, snap *domain.IntelSnapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO intel_snapshots (snapshot_id, seed, tick, created_at) VALUES (?, ?, ?, ?)`,
		snap.ID, snap.Seed, snap.Tick, snap.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO intel_records (snapshot_id, entity_id, player_id, policy, coverage, floor)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare records: %w", err)
	}
	defer stmt.Close()

	for _, e := range snap.Entries {
		// entity_id хранится как int64: SQLite не умеет беззнаковые 64 бита
		_, err := stmt.ExecContext(ctx, snap.ID, int64(e.Entity), int(e.Player),
			int(e.State.Policy), int(e.State.Coverage), int(e.State.Floor))
		if err != nil {
			return fmt.Errorf("insert record %s/%s: %w", e.Entity, e.Player, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// LoadLatest читает последний сохранённый снимок.
func (s *SQLiteStore) LoadLatest(ctx context.Context) (*domain.IntelSnapshot, error) {
	snap := &domain.IntelSnapshot{}
	err := s.db.QueryRowContext(ctx,
		`SELECT snapshot_id, seed, tick, created_at FROM intel_snapshots
		 ORDER BY created_at DESC, tick DESC, rowid DESC LIMIT 1`,
	).Scan(&snap.ID, &snap.Seed, &snap.Tick, &snap.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("get latest: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT entity_id, player_id, policy, coverage, floor FROM intel_records
		 WHERE snapshot_id = ? ORDER BY entity_id, player_id`, snap.ID)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entity int64
		var player, policy, coverage, floor int
		if err := rows.Scan(&entity, &player, &policy, &coverage, &floor); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		state := intel.RecordState{
			Policy:   intel.Policy(policy),
			Coverage: intel.CoverageLevel(coverage),
			Floor:    intel.CoverageLevel(floor),
		}
		if policy < 0 || policy > 255 || !state.Policy.Valid() ||
			coverage < 0 || coverage > 255 || !state.Coverage.Valid() ||
			floor < 0 || floor > 255 || !state.Floor.Valid() {
			return nil, fmt.Errorf("record %d/%d: invalid state %d/%d/%d", entity, player, policy, coverage, floor)
		}
		snap.Entries = append(snap.Entries, domain.IntelEntry{
			Entity: types.EntityID(uint64(entity)),
			Player: types.PlayerID(player),
			State:  state,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return snap, nil
}

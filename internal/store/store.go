package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"prestige/internal/attribution"
	"prestige/internal/stats"
)

// ErrNoRuns is returned by LatestRun when the store holds no runs.
var ErrNoRuns = errors.New("store: no runs recorded")

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
	lockRetryDelay          = 50 * time.Millisecond

	// timeLayout is fixed width so started_at sorts lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store manages run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Run is one analysis run as handed to SaveRun.
type Run struct {
	ID         string
	StartedAt  time.Time
	ConfigPath string
	Stats      []stats.Stats
	Flagged    []*attribution.Flagged
}

// RunSummary is the persisted header of a run.
type RunSummary struct {
	ID         string
	StartedAt  time.Time
	ConfigPath string
}

// TitleFlag is one positive award flag of a catalog title.
type TitleFlag struct {
	Platform string `json:"platform"`
	RowIndex int    `json:"row_index"`
	Title    string `json:"title"`
	TitleKey string `json:"title_key"`
	Flag     string `json:"flag"`
}

// Open initializes or connects to the database at path.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("store: database path is required")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	s := &Store{db: db, path: path, lock: flock.New(path + ".lock")}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun writes a run, its platform statistics, and its positive title
// flags in one transaction. An empty run ID is replaced with a new UUID; the
// ID actually stored is returned.
func (s *Store) SaveRun(ctx context.Context, run Run) (string, error) {
	ctx = ensureContext(ctx)
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return "", fmt.Errorf("acquire store lock: %w", err)
	}
	if !locked {
		return "", fmt.Errorf("acquire store lock: %s is held by another process", s.lock.Path())
	}
	defer func() {
		_ = s.lock.Unlock()
	}()

	err = retryOnBusy(ctx, func() error {
		return s.insertRun(ctx, run)
	})
	if err != nil {
		return "", err
	}
	return run.ID, nil
}

func (s *Store) insertRun(ctx context.Context, run Run) error {
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO runs (id, started_at, config_path) VALUES (?, ?, ?)",
			run.ID, run.StartedAt.UTC().Format(timeLayout), run.ConfigPath,
		); err != nil {
			return fmt.Errorf("insert run: %w", err)
		}
		if err := insertPlatformStats(ctx, tx, run); err != nil {
			return err
		}
		return insertTitleFlags(ctx, tx, run)
	})
}

func insertPlatformStats(ctx context.Context, tx *sql.Tx, run Run) error {
	for i, ps := range run.Stats {
		encoded, err := json.Marshal(ps)
		if err != nil {
			return fmt.Errorf("encode stats %s: %w", ps.Platform, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO platform_stats (run_id, position, platform, catalog_size, total_awards, both_awards, density, stats_json)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, ps.Platform, ps.CatalogSize, ps.TotalAwards, ps.Overlap.Both, ps.Density, string(encoded),
		); err != nil {
			return fmt.Errorf("insert stats %s: %w", ps.Platform, err)
		}
	}
	return nil
}

func insertTitleFlags(ctx context.Context, tx *sql.Tx, run Run) error {
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO title_flags (run_id, platform, row_index, title, title_key, flag) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare title flags: %w", err)
	}
	defer stmt.Close()

	for _, flagged := range run.Flagged {
		if flagged == nil {
			continue
		}
		for i, row := range flagged.Rows {
			for _, name := range positiveFlags(flagged, row) {
				if _, err := stmt.ExecContext(ctx, run.ID, flagged.Platform, i, row.Entry.Title, row.Key, name); err != nil {
					return fmt.Errorf("insert title flag %s: %w", flagged.Platform, err)
				}
			}
		}
	}
	return nil
}

func positiveFlags(f *attribution.Flagged, row attribution.Row) []string {
	var names []string
	for _, flag := range f.Flags {
		if row.Flag(flag) {
			names = append(names, flag.Name())
		}
	}
	for _, id := range f.SourceIDs() {
		if row.HasAward(id) {
			names = append(names, attribution.HasSourceColumn(id))
		}
	}
	if row.HasAnyAward {
		names = append(names, attribution.HasAnyAwardColumn)
	}
	return names
}

// LatestRun returns the most recently started run, or ErrNoRuns.
func (s *Store) LatestRun(ctx context.Context) (*RunSummary, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		"SELECT id, started_at, config_path FROM runs ORDER BY started_at DESC, rowid DESC LIMIT 1")

	var (
		summary   RunSummary
		startedAt string
	)
	if err := row.Scan(&summary.ID, &startedAt, &summary.ConfigPath); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoRuns
		}
		return nil, fmt.Errorf("query latest run: %w", err)
	}
	parsed, err := time.Parse(timeLayout, startedAt)
	if err != nil {
		return nil, fmt.Errorf("parse run start %q: %w", startedAt, err)
	}
	summary.StartedAt = parsed
	return &summary, nil
}

// PlatformStats returns the statistics saved for runID in run order.
func (s *Store) PlatformStats(ctx context.Context, runID string) ([]stats.Stats, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT stats_json FROM platform_stats WHERE run_id = ? ORDER BY position", runID)
	if err != nil {
		return nil, fmt.Errorf("query platform stats: %w", err)
	}
	defer rows.Close()

	var out []stats.Stats
	for rows.Next() {
		var encoded string
		if err := rows.Scan(&encoded); err != nil {
			return nil, fmt.Errorf("scan platform stats: %w", err)
		}
		var decoded stats.Stats
		if err := json.Unmarshal([]byte(encoded), &decoded); err != nil {
			return nil, fmt.Errorf("decode platform stats: %w", err)
		}
		out = append(out, decoded)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate platform stats: %w", err)
	}
	return out, nil
}

// TitleFlags returns the positive flags saved for one platform of runID,
// ordered by catalog row.
func (s *Store) TitleFlags(ctx context.Context, runID, platform string) ([]TitleFlag, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT platform, row_index, title, title_key, flag FROM title_flags
		 WHERE run_id = ? AND platform = ? ORDER BY row_index, rowid`, runID, platform)
	if err != nil {
		return nil, fmt.Errorf("query title flags: %w", err)
	}
	defer rows.Close()

	var out []TitleFlag
	for rows.Next() {
		var flag TitleFlag
		if err := rows.Scan(&flag.Platform, &flag.RowIndex, &flag.Title, &flag.TitleKey, &flag.Flag); err != nil {
			return nil, fmt.Errorf("scan title flag: %w", err)
		}
		out = append(out, flag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate title flags: %w", err)
	}
	return out, nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

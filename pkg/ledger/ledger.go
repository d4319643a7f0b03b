package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/model"
)

// Entry is one row of run_ledger: a record that a RunManifest was
// generated, without needing to re-read the manifest itself from disk.
type Entry struct {
	RunID        string
	ManifestPath string
	RootSHA256   string
	GeneratedAt  string
	FileCount    int
	TotalBytes   int64
}

// Query filters ledger lookups by time range and/or rootSha256 prefix.
type Query struct {
	Since            time.Time
	Until            time.Time
	RootSHA256Prefix string
	Limit            int
}

// Ledger is the SQLite-backed append-only history of run manifests.
type Ledger struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open creates (or reuses) the SQLite database at path, initializing its
// schema if necessary.
func Open(path string, logger *slog.Logger) (*Ledger, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "ledger")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, newStorageError("open", err)
	}
	db.SetMaxOpenConns(1) // modernc.org/sqlite serializes writers; one conn avoids SQLITE_BUSY churn

	l := &Ledger{db: db, logger: logger}
	if err := l.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("ledger opened", "path", path)
	return l, nil
}

func (l *Ledger) initialize() error {
	if _, err := l.db.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		return newStorageError("set_busy_timeout", err)
	}
	if _, err := l.db.Exec(Schema); err != nil {
		return newStorageError("create_schema", err)
	}
	if _, err := l.db.Exec(insertSchemaVersion, SchemaVersion); err != nil {
		return newStorageError("insert_schema_version", err)
	}

	var version int
	if err := l.db.QueryRow(getSchemaVersion).Scan(&version); err != nil && err != sql.ErrNoRows {
		return newStorageError("get_schema_version", err)
	}
	if version != SchemaVersion {
		return newStorageError("schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Record appends a ledger entry for a RunManifest generation.
func (l *Ledger) Record(ctx context.Context, manifestPath string, m model.RunManifest) (Entry, error) {
	var totalBytes int64
	for _, f := range m.Files {
		totalBytes += f.Bytes
	}

	entry := Entry{
		RunID:        uuid.New().String(),
		ManifestPath: manifestPath,
		RootSHA256:   m.RootSHA256,
		GeneratedAt:  m.GeneratedAt,
		FileCount:    len(m.Files),
		TotalBytes:   totalBytes,
	}

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO run_ledger (run_id, manifest_path, root_sha256, generated_at, file_count, total_bytes)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.RunID, entry.ManifestPath, entry.RootSHA256, entry.GeneratedAt, entry.FileCount, entry.TotalBytes)
	if err != nil {
		return Entry{}, newStorageError("record", err)
	}

	l.logger.Debug("recorded run manifest", "run_id", entry.RunID, "root_sha256", entry.RootSHA256)
	return entry, nil
}

// Query returns ledger entries matching q, newest first.
func (l *Ledger) Query(ctx context.Context, q Query) ([]Entry, error) {
	var conditions []string
	var args []interface{}

	if !q.Since.IsZero() {
		conditions = append(conditions, "generated_at >= ?")
		args = append(args, q.Since.UTC().Format(time.RFC3339))
	}
	if !q.Until.IsZero() {
		conditions = append(conditions, "generated_at <= ?")
		args = append(args, q.Until.UTC().Format(time.RFC3339))
	}
	if q.RootSHA256Prefix != "" {
		conditions = append(conditions, "root_sha256 LIKE ?")
		args = append(args, q.RootSHA256Prefix+"%")
	}

	sqlQuery := "SELECT run_id, manifest_path, root_sha256, generated_at, file_count, total_bytes FROM run_ledger"
	if len(conditions) > 0 {
		sqlQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	sqlQuery += " ORDER BY generated_at DESC"

	limit := 100
	if q.Limit > 0 {
		limit = q.Limit
	}
	sqlQuery += fmt.Sprintf(" LIMIT %d", limit)

	rows, err := l.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, newStorageError("query", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.RunID, &e.ManifestPath, &e.RootSHA256, &e.GeneratedAt, &e.FileCount, &e.TotalBytes); err != nil {
			return nil, newStorageError("scan", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, newStorageError("query", err)
	}

	return entries, nil
}

// Get returns the single entry recorded under runID.
func (l *Ledger) Get(ctx context.Context, runID string) (Entry, error) {
	var e Entry
	err := l.db.QueryRowContext(ctx, `
		SELECT run_id, manifest_path, root_sha256, generated_at, file_count, total_bytes
		FROM run_ledger WHERE run_id = ?
	`, runID).Scan(&e.RunID, &e.ManifestPath, &e.RootSHA256, &e.GeneratedAt, &e.FileCount, &e.TotalBytes)
	if err == sql.ErrNoRows {
		return Entry{}, newStorageError("get", fmt.Errorf("no ledger entry for run %q", runID))
	}
	if err != nil {
		return Entry{}, newStorageError("get", err)
	}
	return e, nil
}

// Close releases the underlying database connection.
func (l *Ledger) Close() error {
	if err := l.db.Close(); err != nil {
		return newStorageError("close", err)
	}
	return nil
}

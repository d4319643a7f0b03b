package ledger

// SchemaVersion is the current ledger database schema version.
const SchemaVersion = 1

// Schema creates the run_ledger table and its lookup indexes.
const Schema = `
CREATE TABLE IF NOT EXISTS run_ledger (
    run_id        TEXT PRIMARY KEY,
    manifest_path TEXT NOT NULL,
    root_sha256   TEXT NOT NULL,
    generated_at  TEXT NOT NULL,
    file_count    INTEGER NOT NULL,
    total_bytes   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS schema_version (
    version    INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_run_ledger_generated_at ON run_ledger(generated_at);
CREATE INDEX IF NOT EXISTS idx_run_ledger_root_sha256 ON run_ledger(root_sha256);
`

const insertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

const getSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

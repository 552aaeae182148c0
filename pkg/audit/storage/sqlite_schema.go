package storage

// SchemaVersion is the current audit database schema version.
const SchemaVersion = 1

// Schema creates the audit tables and indexes. Statements are idempotent so
// the schema can be re-applied on every startup.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_records (
	id               TEXT PRIMARY KEY,
	kind             TEXT NOT NULL,
	decision_time    TIMESTAMP NOT NULL,
	recorded_time    TIMESTAMP NOT NULL,
	method           TEXT NOT NULL,
	path             TEXT NOT NULL,
	target           TEXT,
	matched_rule     TEXT,
	verdict          TEXT,
	match_count      INTEGER NOT NULL DEFAULT 0,
	matched_patterns TEXT NOT NULL DEFAULT '[]',
	body_size        INTEGER NOT NULL DEFAULT 0,
	duration_us      INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_audit_decision_time ON audit_records(decision_time);
CREATE INDEX IF NOT EXISTS idx_audit_kind ON audit_records(kind);
CREATE INDEX IF NOT EXISTS idx_audit_target ON audit_records(target);

CREATE TABLE IF NOT EXISTS schema_version (
	version    INTEGER PRIMARY KEY,
	applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// InsertSchemaVersion records the schema version, ignoring duplicates.
const InsertSchemaVersion = `INSERT OR IGNORE INTO schema_version (version) VALUES (?);`

// GetSchemaVersion returns the highest applied schema version.
const GetSchemaVersion = `SELECT MAX(version) FROM schema_version;`

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"meridian-hq/meridian/pkg/audit"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/audit.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements audit.Storage using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage opens the database, applies the schema, and enables WAL
// mode if configured.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "audit.storage.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, audit.NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite audit storage initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// initialize applies pragmas and the schema.
func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return audit.NewStorageError("sqlite", "enable_wal", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return audit.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return audit.NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return audit.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return audit.NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return audit.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Store persists an audit record.
func (s *SQLiteStorage) Store(ctx context.Context, record *audit.Record) error {
	patterns, _ := json.Marshal(record.MatchedPatterns)

	query := `
		INSERT INTO audit_records (
			id, kind, decision_time, recorded_time,
			method, path,
			target, matched_rule,
			verdict, match_count, matched_patterns, body_size,
			duration_us
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		record.ID, string(record.Kind), record.DecisionTime, record.RecordedTime,
		record.Method, record.Path,
		nullable(record.Target), nullable(record.MatchedRule),
		nullable(record.Verdict), record.MatchCount, string(patterns), record.BodySize,
		record.Duration.Microseconds(),
	)
	if err != nil {
		return audit.NewStorageError("sqlite", "store", err)
	}

	return nil
}

// Query retrieves records matching the filters, ordered by decision time.
func (s *SQLiteStorage) Query(ctx context.Context, query *audit.Query) ([]*audit.Record, error) {
	where, args := buildWhereClause(query)

	sqlQuery := `
		SELECT id, kind, decision_time, recorded_time,
		       method, path,
		       target, matched_rule,
		       verdict, match_count, matched_patterns, body_size,
		       duration_us
		FROM audit_records` + where + ` ORDER BY decision_time ASC`

	if query != nil && query.Limit > 0 {
		sqlQuery += fmt.Sprintf(" LIMIT %d", query.Limit)
		if query.Offset > 0 {
			sqlQuery += fmt.Sprintf(" OFFSET %d", query.Offset)
		}
	} else if query != nil && query.Offset > 0 {
		// SQLite requires a LIMIT clause before OFFSET.
		sqlQuery += fmt.Sprintf(" LIMIT -1 OFFSET %d", query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, audit.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	records := make([]*audit.Record, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, audit.NewStorageError("sqlite", "scan", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, audit.NewStorageError("sqlite", "query", err)
	}

	return records, nil
}

// Count returns the number of records matching the filters.
func (s *SQLiteStorage) Count(ctx context.Context, query *audit.Query) (int64, error) {
	where, args := buildWhereClause(query)

	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_records"+where, args...).Scan(&count)
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// Delete removes records matching the filters.
func (s *SQLiteStorage) Delete(ctx context.Context, query *audit.Query) (int64, error) {
	where, args := buildWhereClause(query)

	result, err := s.db.ExecContext(ctx, "DELETE FROM audit_records"+where, args...)
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "delete", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "delete", err)
	}
	return deleted, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return audit.NewStorageError("sqlite", "close", err)
	}
	return nil
}

// buildWhereClause builds the WHERE clause and args for a query.
// Returns an empty string when no filters are set.
func buildWhereClause(query *audit.Query) (string, []interface{}) {
	if query == nil {
		return "", nil
	}

	conditions := make([]string, 0, 6)
	args := make([]interface{}, 0, 6)

	if query.StartTime != nil {
		conditions = append(conditions, "decision_time >= ?")
		args = append(args, *query.StartTime)
	}
	if query.EndTime != nil {
		conditions = append(conditions, "decision_time <= ?")
		args = append(args, *query.EndTime)
	}
	if query.Kind != "" {
		conditions = append(conditions, "kind = ?")
		args = append(args, string(query.Kind))
	}
	if query.Target != "" {
		conditions = append(conditions, "target = ?")
		args = append(args, query.Target)
	}
	if query.MatchedRule != "" {
		conditions = append(conditions, "matched_rule = ?")
		args = append(args, query.MatchedRule)
	}
	if query.Verdict != "" {
		conditions = append(conditions, "verdict = ?")
		args = append(args, query.Verdict)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// scanRecord scans one row into an audit record.
func scanRecord(rows *sql.Rows) (*audit.Record, error) {
	var (
		record     audit.Record
		kind       string
		target     sql.NullString
		rule       sql.NullString
		verdict    sql.NullString
		patterns   string
		durationUs int64
	)

	err := rows.Scan(
		&record.ID, &kind, &record.DecisionTime, &record.RecordedTime,
		&record.Method, &record.Path,
		&target, &rule,
		&verdict, &record.MatchCount, &patterns, &record.BodySize,
		&durationUs,
	)
	if err != nil {
		return nil, err
	}

	record.Kind = audit.RecordKind(kind)
	record.Target = target.String
	record.MatchedRule = rule.String
	record.Verdict = verdict.String
	record.Duration = time.Duration(durationUs) * time.Microsecond

	if err := json.Unmarshal([]byte(patterns), &record.MatchedPatterns); err != nil {
		return nil, fmt.Errorf("decoding matched_patterns: %w", err)
	}

	return &record, nil
}

// nullable converts an empty string to NULL.
func nullable(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

// Package storage provides audit storage backends.
//
// Two implementations of audit.Storage are available:
//
//   - MemoryStorage: in-process, for tests and short-lived tooling
//   - SQLiteStorage: durable single-file storage with WAL mode
//
// Both apply the same Query semantics: filters combine with AND, results
// are ordered by decision time ascending, and Limit/Offset paginate.
package storage

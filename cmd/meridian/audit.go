package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"meridian-hq/meridian/pkg/audit"
	"meridian-hq/meridian/pkg/audit/retention"
	"meridian-hq/meridian/pkg/audit/storage"
)

var auditFlags struct {
	db string

	kind    string
	target  string
	rule    string
	verdict string
	since   string
	until   string
	limit   int
	offset  int

	retentionDays int
	maxRecords    int64
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect and maintain the audit trail",
}

var auditQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query audit records",
	Long: `Query the audit trail and print matching records as JSON, ordered by
decision time ascending.

Examples:
  # All routing decisions
  meridian audit query --db data/audit.db --kind routing

  # Redaction scans that masked something, most recent day
  meridian audit query --db data/audit.db --kind redaction \
    --since 2026-08-22T00:00:00Z

  # Paginate
  meridian audit query --db data/audit.db --limit 50 --offset 100`,
	RunE: auditQuery,
}

var auditPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Apply retention policy to audit records",
	Long: `Delete audit records past the retention window and trim the oldest
records above the record cap. Runs once and prints the number deleted.

Examples:
  # Keep 30 days
  meridian audit prune --db data/audit.db --retention-days 30

  # Additionally cap the table at one million records
  meridian audit prune --db data/audit.db --retention-days 30 --max-records 1000000`,
	RunE: auditPrune,
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditQueryCmd)
	auditCmd.AddCommand(auditPruneCmd)

	auditCmd.PersistentFlags().StringVar(&auditFlags.db, "db", "data/audit.db", "SQLite audit database path")

	auditQueryCmd.Flags().StringVar(&auditFlags.kind, "kind", "", "record kind: routing, redaction")
	auditQueryCmd.Flags().StringVar(&auditFlags.target, "target", "", "filter by routing target")
	auditQueryCmd.Flags().StringVar(&auditFlags.rule, "rule", "", "filter by matched rule name")
	auditQueryCmd.Flags().StringVar(&auditFlags.verdict, "verdict", "", "filter by scrub verdict")
	auditQueryCmd.Flags().StringVar(&auditFlags.since, "since", "", "start of time range (RFC 3339)")
	auditQueryCmd.Flags().StringVar(&auditFlags.until, "until", "", "end of time range (RFC 3339)")
	auditQueryCmd.Flags().IntVar(&auditFlags.limit, "limit", 0, "maximum records to return (0 = all)")
	auditQueryCmd.Flags().IntVar(&auditFlags.offset, "offset", 0, "records to skip")

	auditPruneCmd.Flags().IntVar(&auditFlags.retentionDays, "retention-days", 90, "delete records older than this many days (0 = keep forever)")
	auditPruneCmd.Flags().Int64Var(&auditFlags.maxRecords, "max-records", 0, "keep at most this many records (0 = unlimited)")
}

func openAuditStorage() (*storage.SQLiteStorage, error) {
	cfg := storage.DefaultSQLiteConfig()
	cfg.Path = auditFlags.db
	return storage.NewSQLiteStorage(cfg)
}

// commandContext returns the command's context, or context.Background when
// the command runs outside Execute and carries none.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil {
		if ctx := cmd.Context(); ctx != nil {
			return ctx
		}
	}
	return context.Background()
}

func auditQuery(cmd *cobra.Command, args []string) error {
	store, err := openAuditStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	query := &audit.Query{
		Kind:        audit.RecordKind(auditFlags.kind),
		Target:      auditFlags.target,
		MatchedRule: auditFlags.rule,
		Verdict:     auditFlags.verdict,
		Limit:       auditFlags.limit,
		Offset:      auditFlags.offset,
	}

	if auditFlags.since != "" {
		t, err := time.Parse(time.RFC3339, auditFlags.since)
		if err != nil {
			return fmt.Errorf("invalid --since: %w", err)
		}
		query.StartTime = &t
	}
	if auditFlags.until != "" {
		t, err := time.Parse(time.RFC3339, auditFlags.until)
		if err != nil {
			return fmt.Errorf("invalid --until: %w", err)
		}
		query.EndTime = &t
	}

	records, err := store.Query(commandContext(cmd), query)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return err
		}
	}
	fmt.Fprintf(os.Stderr, "%d record(s)\n", len(records))
	return nil
}

func auditPrune(cmd *cobra.Command, args []string) error {
	store, err := openAuditStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	pruner := retention.NewPruner(store, &retention.Config{
		RetentionDays: auditFlags.retentionDays,
		MaxRecords:    auditFlags.maxRecords,
	})

	deleted, err := pruner.Prune(commandContext(cmd))
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d record(s)\n", deleted)
	return nil
}

// Package retention enforces retention policy on the audit trail.
//
// The Pruner deletes records in two phases: age-based (older than the
// configured retention period) and count-based (oldest records beyond the
// configured cap). The Scheduler runs the pruner on a cron schedule.
package retention

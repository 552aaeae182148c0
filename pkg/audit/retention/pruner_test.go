package retention

import (
	"context"
	"testing"
	"time"

	"meridian-hq/meridian/pkg/audit"
	"meridian-hq/meridian/pkg/audit/storage"
)

func seedRecords(t *testing.T, s audit.Storage, ages ...time.Duration) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	for i, age := range ages {
		record := &audit.Record{
			ID:           string(rune('a' + i)),
			Kind:         audit.KindRouting,
			DecisionTime: now.Add(-age),
			RecordedTime: now,
			Method:       "GET",
			Path:         "/",
			Target:       "v1",
		}
		if err := s.Store(ctx, record); err != nil {
			t.Fatalf("Store() error = %v", err)
		}
	}
}

func TestPruneByAge(t *testing.T) {
	s := storage.NewMemoryStorage()
	seedRecords(t, s, 100*24*time.Hour, 95*24*time.Hour, time.Hour)

	p := NewPruner(s, &Config{RetentionDays: 90})
	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("Prune() = %d, want 2", deleted)
	}

	count, _ := s.Count(context.Background(), &audit.Query{})
	if count != 1 {
		t.Errorf("%d records remain, want 1", count)
	}
}

func TestPruneByCount(t *testing.T) {
	s := storage.NewMemoryStorage()
	seedRecords(t, s, 5*time.Hour, 4*time.Hour, 3*time.Hour, 2*time.Hour, time.Hour)

	p := NewPruner(s, &Config{RetentionDays: 0, MaxRecords: 2})
	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 3 {
		t.Errorf("Prune() = %d, want 3", deleted)
	}

	remaining, _ := s.Query(context.Background(), &audit.Query{})
	if len(remaining) != 2 {
		t.Fatalf("%d records remain, want 2", len(remaining))
	}
	// Newest two survive.
	if remaining[0].ID != "d" || remaining[1].ID != "e" {
		t.Errorf("wrong survivors: %s, %s", remaining[0].ID, remaining[1].ID)
	}
}

func TestPruneNothingToDo(t *testing.T) {
	s := storage.NewMemoryStorage()
	seedRecords(t, s, time.Hour)

	p := NewPruner(s, &Config{RetentionDays: 90, MaxRecords: 100})
	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 0 {
		t.Errorf("Prune() = %d, want 0", deleted)
	}
}

func TestPruneDisabled(t *testing.T) {
	s := storage.NewMemoryStorage()
	seedRecords(t, s, 365*24*time.Hour)

	p := NewPruner(s, &Config{RetentionDays: 0, MaxRecords: 0})
	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 0 {
		t.Errorf("Prune() = %d with retention disabled, want 0", deleted)
	}
}

func TestSchedulerRejectsBadCron(t *testing.T) {
	s := storage.NewMemoryStorage()
	p := NewPruner(s, &Config{RetentionDays: 90, PruneSchedule: "not a cron line"})

	if err := p.Start(context.Background()); err == nil {
		t.Error("Start() accepted an invalid cron expression")
	}
}

func TestSchedulerEmptyScheduleIsNoop(t *testing.T) {
	s := storage.NewMemoryStorage()
	p := NewPruner(s, &Config{RetentionDays: 90, PruneSchedule: ""})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if p.scheduler.IsRunning() {
		t.Error("scheduler running with empty schedule")
	}
}

func TestSchedulerStartStop(t *testing.T) {
	s := storage.NewMemoryStorage()
	p := NewPruner(s, &Config{RetentionDays: 90, PruneSchedule: "0 3 * * *"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !p.scheduler.IsRunning() {
		t.Fatal("scheduler not running after Start")
	}
	if p.NextPruning() == nil {
		t.Error("NextPruning() = nil while running")
	}

	p.Stop()
	if p.scheduler.IsRunning() {
		t.Error("scheduler still running after Stop")
	}
}

package recorder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"meridian-hq/meridian/pkg/audit"
	"meridian-hq/meridian/pkg/redact"
	"meridian-hq/meridian/pkg/routing"
)

// Config contains configuration for the audit recorder.
type Config struct {
	// Enabled enables audit recording.
	Enabled bool

	// AsyncBuffer is the size of the async write channel buffer.
	// Default: 1000
	AsyncBuffer int

	// WriteTimeout is the timeout for writing a record to storage.
	// Default: 5 seconds
	WriteTimeout time.Duration
}

// DefaultConfig returns the default recorder configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		AsyncBuffer:  1000,
		WriteTimeout: 5 * time.Second,
	}
}

// Recorder records routing and redaction outcomes asynchronously so the
// filter hot path never waits on storage.
type Recorder struct {
	storage    audit.Storage
	config     *Config
	recordChan chan *audit.Record
	wg         sync.WaitGroup
	done       chan struct{}
	logger     *slog.Logger
}

// NewRecorder creates a recorder backed by the provided storage and starts
// its background write worker.
func NewRecorder(storage audit.Storage, config *Config) *Recorder {
	if config == nil {
		config = DefaultConfig()
	}
	if config.AsyncBuffer <= 0 {
		config.AsyncBuffer = DefaultConfig().AsyncBuffer
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = DefaultConfig().WriteTimeout
	}

	r := &Recorder{
		storage:    storage,
		config:     config,
		recordChan: make(chan *audit.Record, config.AsyncBuffer),
		done:       make(chan struct{}),
		logger:     slog.Default().With("component", "audit.recorder"),
	}

	r.wg.Add(1)
	go r.worker()

	r.logger.Info("audit recorder initialized",
		"async_buffer", config.AsyncBuffer,
		"write_timeout", config.WriteTimeout,
	)

	return r
}

// RecordRouting enqueues a record for one routing decision.
// Returns immediately; a full channel drops the record.
func (r *Recorder) RecordRouting(method, path string, decision routing.Decision, duration time.Duration) error {
	if !r.config.Enabled {
		return nil
	}

	now := time.Now()
	record := &audit.Record{
		ID:           uuid.New().String(),
		Kind:         audit.KindRouting,
		DecisionTime: now,
		RecordedTime: now,
		Method:       method,
		Path:         path,
		Target:       decision.Target,
		MatchedRule:  decision.MatchedRule,
		Duration:     duration,
	}

	return r.enqueue(record)
}

// RecordRedaction enqueues a record for one body scrub. The verdict is
// recorded even when the body was never scanned (bypassed, non-text, too
// large), in which case result carries zero matches.
func (r *Recorder) RecordRedaction(method, path string, verdict redact.ScrubVerdict, result redact.Result, bodySize int, duration time.Duration) error {
	if !r.config.Enabled {
		return nil
	}

	now := time.Now()
	record := &audit.Record{
		ID:              uuid.New().String(),
		Kind:            audit.KindRedaction,
		DecisionTime:    now,
		RecordedTime:    now,
		Method:          method,
		Path:            path,
		Verdict:         string(verdict),
		MatchCount:      result.MatchCount,
		MatchedPatterns: result.MatchedPatterns,
		BodySize:        bodySize,
		Duration:        duration,
	}

	return r.enqueue(record)
}

// enqueue hands a record to the write worker without blocking.
func (r *Recorder) enqueue(record *audit.Record) error {
	select {
	case r.recordChan <- record:
		return nil
	case <-r.done:
		r.logger.Warn("recorder shutting down, dropping record",
			"record_id", record.ID,
			"kind", record.Kind,
		)
		return audit.NewRecorderError(record.ID, context.Canceled)
	default:
		r.logger.Error("audit channel full, dropping record",
			"record_id", record.ID,
			"kind", record.Kind,
			"channel_capacity", r.config.AsyncBuffer,
		)
		return audit.NewRecorderError(record.ID, context.DeadlineExceeded)
	}
}

// Close shuts down the recorder, draining the channel and waiting for all
// pending writes to complete.
func (r *Recorder) Close() error {
	r.logger.Info("shutting down audit recorder")

	close(r.done)
	r.wg.Wait()

	r.logger.Info("audit recorder shut down complete")
	return nil
}

// worker drains the record channel into storage.
func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case record := <-r.recordChan:
			r.writeRecord(record)

		case <-r.done:
			r.logger.Debug("draining audit channel before shutdown",
				"pending_count", len(r.recordChan),
			)
			for {
				select {
				case record := <-r.recordChan:
					r.writeRecord(record)
				default:
					return
				}
			}
		}
	}
}

// writeRecord writes a single record to storage.
func (r *Recorder) writeRecord(record *audit.Record) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	start := time.Now()
	if err := r.storage.Store(ctx, record); err != nil {
		r.logger.Error("failed to store audit record",
			"record_id", record.ID,
			"kind", record.Kind,
			"error", err,
		)
		return
	}

	duration := time.Since(start)
	r.logger.Debug("audit record stored",
		"record_id", record.ID,
		"kind", record.Kind,
		"duration_ms", duration.Milliseconds(),
	)

	if duration > r.config.WriteTimeout/2 {
		r.logger.Warn("slow audit write",
			"record_id", record.ID,
			"duration_ms", duration.Milliseconds(),
		)
	}
}

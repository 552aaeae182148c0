// Package recorder provides the async write path for audit records.
//
// Both filter pipelines run on the request hot path, so the recorder never
// blocks the caller: records are enqueued on a buffered channel and a
// background worker drains them into storage. A full channel drops the
// record with an error log rather than stalling traffic.
package recorder

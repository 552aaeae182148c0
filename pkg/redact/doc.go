// Package redact implements the response-body redaction pipeline: an ordered
// table of PII patterns, a scanning engine that masks matched text, and an
// incremental body buffer for chunked response streams.
//
// The built-in patterns (credit card, SSN, email, US phone) are structural
// byte scanners rather than regular expressions, so the engine stays usable
// in sandboxed data planes that cannot host a regex engine and the masks stay
// byte-exact across deployments. Custom patterns configured at load time do
// use the standard regexp package.
//
// The engine is fail-open by contract: any input it cannot safely scan
// (invalid encoding, oversized body, non-text content) passes through
// unmodified with an observable bypass reason. A Table is built once from
// configuration and shared read-only across requests; Results are
// per-request values.
package redact

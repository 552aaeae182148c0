// Package routing implements the request classification pipeline: ordered,
// multi-condition routing rules evaluated against request attributes
// (headers, cookies, path, query) to select an upstream target.
//
// A RuleSet is built once from configuration (rules validated, regex
// conditions compiled, the set stably sorted by ascending priority) and is
// then immutable and shared read-only across requests. Evaluation
// walks the sorted rules and returns the first rule whose conditions all
// hold; when none does, the configured default target is returned.
//
// The engine is purely computational. It decides; applying the decision
// (selecting an upstream, mutating live headers) belongs to the host
// adapter. All evaluation is deterministic: identical attributes and rule
// set always produce the identical decision.
package routing

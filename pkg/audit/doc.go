// Package audit defines the decision trail for the traffic policy engine.
//
// Every routing decision and every body scrub can be captured as an audit
// Record: which rule matched, which target was selected, which patterns
// fired and how many matches were masked. Records never contain request or
// response bodies, only outcomes, so the trail itself holds no PII.
//
// The package defines the Record and Query types and the Storage interface.
// Concrete backends live in the storage subpackage, the async write path in
// recorder, and retention enforcement in retention.
package audit

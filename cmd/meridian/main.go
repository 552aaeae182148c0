// Meridian is an edge HTTP traffic-policy engine.
//
// It provides two pipelines for proxy data planes: PII redaction of
// response bodies and priority-ordered routing rule evaluation over request
// attributes.
//
// Usage:
//
//	# Validate a configuration file
//	meridian lint --file meridian.json
//
//	# Scrub a body from stdin
//	cat body.json | meridian scrub
//
//	# Evaluate a routing decision
//	meridian route --config meridian.json --path /api/items --cookie "beta=true"
//
//	# Query the audit trail
//	meridian audit query --db data/audit.db --kind routing
//
//	# Show version information
//	meridian version
package main

func main() {
	Execute()
}

// Package filter adapts per-event host callbacks into engine calls.
//
// A proxy host drives two filters per HTTP exchange:
//
//   - RequestFilter: on request headers, evaluates the routing rule set and
//     returns the selected target plus the header mutations to apply.
//   - ResponseFilter: on response headers, decides whether the body will be
//     scrubbed; on body chunks, buffers until end of stream and then runs
//     the redaction scan.
//
// Filters never touch sockets. They compute decisions and observable header
// mutations; applying them is the host's job. Every failure path is
// fail-open: a panic or internal error yields a pass-through result.
package filter

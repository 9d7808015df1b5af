// Package store provides a SQLite-backed journal of stopwatch events.
//
// The journal is append-only. Each processed action becomes one row keyed by
// its sequence number, and rows are grouped into runs (a run ends with a
// reset).
//
// # Ordering
//
// All reads order by seq ASC, never by wall time, so a journal reads back the
// same way every time.
//
// # Payload
//
// Alongside the indexed columns every row keeps the event's canonical JSON
// (RFC 8785) in the payload column. Reads decode from the columns; the payload
// is what trace output prints byte for byte.
//
// # Database Configuration
//
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - one open connection: ":memory:" databases are per connection
//
// The CLI only ever opens ":memory:" journals. Nothing survives the process.
package store

// Package history journals processing outcomes in SQLite.
//
// The Store records one row per handled file (success, ignored, or error) so
// the operator can review what the monitor did after the fact. It is a
// reporting surface only: nothing is replayed, retried, or resumed from the
// journal across process restarts.
package history

// Package notifications delivers optional push notifications via ntfy.
//
// When no topic is configured the service is a no-op, so callers publish
// unconditionally and let configuration decide whether anything leaves the
// process. Delivery failures are returned to the caller for logging but are
// never fatal to the monitor.
package notifications

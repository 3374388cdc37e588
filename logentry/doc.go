// Package logentry defines the log record reporters consume and the
// formatters that render it.
//
// An Entry is a managed object holding a severity, syslog-style header
// fields and a payload buffer. Formatters turn an entry into a new buffer:
// Text for humans, Syslog for RFC 5424 collectors, JSON for log pipelines.
package logentry

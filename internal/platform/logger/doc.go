// Package logger configures the process-wide slog JSON logger from the
// server config and carries per-request loggers (tagged with trace_id)
// through context.Context.
package logger

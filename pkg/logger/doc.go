// Package logger provides slog attribute helpers shared across the SDK.
//
// Helpers return an empty slog.Attr for nil or empty inputs, so call sites
// never need nil checks:
//
//	log.Error("status update failed", logger.ProxyID(id), logger.Error(err))
package logger

// Package logger holds the application logger of plinter, a zap sugared logger
// with a process-wide atomic level.
//
// Helpers take a context so that fields attached with WithKV (such as the traced URL)
// follow every entry written while handling that context. Trace output does not go
// through this package unless the "logger" sink is selected.
package logger

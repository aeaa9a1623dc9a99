// Package app provides the use cases behind the plinter commands.
// It builds the printer, the trace sink and the logging HTTP client from the configuration,
// sends the requested calls and prints the effective configuration.
package app

// Package output provides the destinations trace lines are written to:
// the console with optional border coloring, a rotated file and the application logger.
package output

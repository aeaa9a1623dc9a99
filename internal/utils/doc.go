// Package utils provides small helpers shared by the CLI packages:
// safe numeric conversion, line-oriented file reading and slice transformation.
package utils

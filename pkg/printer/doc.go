// Package printer renders canonical HTTP messages as bordered, wrapped,
// human-readable trace blocks and hands every finished line to a Sink.
//
// A Printer is a pure function of a message and an immutable Config: it keeps
// no state between calls, produces byte-identical output for identical input,
// and can be shared freely between goroutines. Serializing calls into a Sink
// that is not safe for concurrent use is up to whoever supplies the Sink.
package printer

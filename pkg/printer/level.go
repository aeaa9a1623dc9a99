package printer

import (
	"fmt"
	"strings"
)

// Level controls how much of a message is rendered.
type Level int

// Verbosity levels, from least to most detailed.
const (
	// LevelNone renders nothing.
	LevelNone Level = iota
	// LevelBasic renders a single summary line per message.
	LevelBasic
	// LevelHeaders renders the summary and the headers.
	LevelHeaders
	// LevelBody renders the summary, the headers and the body.
	LevelBody
)

// ParseLevel converts a level name ("none", "basic", "headers", "body") into a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none":
		return LevelNone, nil
	case "basic":
		return LevelBasic, nil
	case "headers":
		return LevelHeaders, nil
	case "body":
		return LevelBody, nil
	default:
		return LevelNone, fmt.Errorf("%w: '%s'", ErrInvalidLevel, name)
	}
}

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelBasic:
		return "basic"
	case LevelHeaders:
		return "headers"
	case LevelBody:
		return "body"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

func (l Level) valid() bool {
	return l >= LevelNone && l <= LevelBody
}

// Output selects which side of an exchange is rendered.
type Output int

// Output modes.
const (
	// OutputBoth renders requests and responses.
	OutputBoth Output = iota
	// OutputRequestOnly renders requests only.
	OutputRequestOnly
	// OutputResponseOnly renders responses only.
	OutputResponseOnly
)

// ParseOutput converts an output name into an Output.
// Accepted names are "both", "request" and "response", optionally with an "_only" or "-only" suffix.
func ParseOutput(name string) (Output, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.TrimSuffix(strings.TrimSuffix(normalized, "_only"), "-only")

	switch normalized {
	case "both":
		return OutputBoth, nil
	case "request":
		return OutputRequestOnly, nil
	case "response":
		return OutputResponseOnly, nil
	default:
		return OutputBoth, fmt.Errorf("%w: '%s'", ErrInvalidOutput, name)
	}
}

// String returns the output name.
func (o Output) String() string {
	switch o {
	case OutputBoth:
		return "both"
	case OutputRequestOnly:
		return "request"
	case OutputResponseOnly:
		return "response"
	default:
		return fmt.Sprintf("output(%d)", int(o))
	}
}

func (o Output) valid() bool {
	return o >= OutputBoth && o <= OutputResponseOnly
}

package message

import "strings"

// Protocol is the HTTP protocol version an exchange was carried over.
type Protocol int

// Supported protocol versions.
const (
	ProtocolUnknown Protocol = iota
	ProtocolHTTP10
	ProtocolHTTP11
	ProtocolHTTP2
	ProtocolHTTP3
)

// ParseProtocol converts a protocol string, as reported by HTTP clients and
// servers ("HTTP/1.1", "HTTP/2.0", "h2", "h2c", "h3"), into a Protocol.
// Unrecognized values map to ProtocolUnknown.
func ParseProtocol(value string) Protocol {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "http/1.0":
		return ProtocolHTTP10
	case "http/1.1":
		return ProtocolHTTP11
	case "http/2", "http/2.0", "h2", "h2c", "h2_prior_knowledge":
		return ProtocolHTTP2
	case "http/3", "http/3.0", "h3", "quic":
		return ProtocolHTTP3
	default:
		return ProtocolUnknown
	}
}

// ProtocolFromVersion maps major and minor version numbers to a Protocol.
func ProtocolFromVersion(major, minor int) Protocol {
	switch {
	case major == 1 && minor == 0:
		return ProtocolHTTP10
	case major == 1 && minor == 1:
		return ProtocolHTTP11
	case major == 2:
		return ProtocolHTTP2
	case major == 3:
		return ProtocolHTTP3
	default:
		return ProtocolUnknown
	}
}

// String returns the display form of the protocol.
func (p Protocol) String() string {
	switch p {
	case ProtocolHTTP10:
		return "HTTP/1.0"
	case ProtocolHTTP11:
		return "HTTP/1.1"
	case ProtocolHTTP2:
		return "HTTP/2"
	case ProtocolHTTP3:
		return "HTTP/3"
	case ProtocolUnknown:
		return "UNKNOWN"
	default:
		return "UNKNOWN"
	}
}

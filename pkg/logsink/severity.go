package logsink

import (
	"fmt"
	"strings"
)

// Severity classifies a record.
type Severity int

const (
	// Debug records are dropped unless the sink was opened with Debug set.
	Debug Severity = iota
	// Info records carry standard information.
	Info
	// Error records report recoverable errors.
	Error
	// Fatal records report unrecoverable errors and trigger the fatal-exit policy.
	Fatal

	// exception is reserved for LogException.
	exception
)

var severityNames = [...]string{
	Debug:     "DEBUG",
	Info:      "INFO",
	Error:     "ERROR",
	Fatal:     "FATAL",
	exception: "EXCEPTION",
}

func (s Severity) valid() bool {
	return s >= Debug && s <= exception
}

// public reports whether callers may write records at s directly.
func (s Severity) public() bool {
	return s >= Debug && s <= Fatal
}

// String returns the upper-case name used in log lines.
func (s Severity) String() string {
	if !s.valid() {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

// label is the metrics label value.
func (s Severity) label() string {
	if !s.valid() {
		return "invalid"
	}
	return strings.ToLower(severityNames[s])
}

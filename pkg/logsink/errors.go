package logsink

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrClosed is returned for writes after the sink was closed.
	ErrClosed = errors.New("log sink is closed")
	// ErrFatal marks errors after which the fatal-exit policy requires the
	// process to terminate. Test with IsFatal.
	ErrFatal = errors.New("anthrazit: fatal")
)

// InitError reports that the log file could not be created or opened.
type InitError struct {
	Path string
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("create log file %s: %v", e.Path, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// WriteError reports a failed write to the log file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write log file %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// CloseError reports a failed sync or close of the log file.
type CloseError struct {
	Path string
	Err  error
}

func (e *CloseError) Error() string {
	return fmt.Sprintf("close log file %s: %v", e.Path, e.Err)
}

func (e *CloseError) Unwrap() error { return e.Err }

// IsFatal reports whether err carries the ErrFatal mark.
func IsFatal(err error) bool {
	return err != nil && errors.Is(err, ErrFatal)
}

// ExitCode maps an error returned by the sink to a process exit status.
// Only fatal errors end the process; other sink errors have already been
// reported on the console and are not process-ending.
func ExitCode(err error) int {
	if IsFatal(err) {
		return 1
	}
	return 0
}

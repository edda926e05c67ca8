package logsink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/JakeFAU/anthrazit/internal/clock"
	"github.com/JakeFAU/anthrazit/internal/id"
	"github.com/JakeFAU/anthrazit/internal/metrics"
)

// selfTag tags the records the sink writes about itself.
const selfTag = "anthrazit"

const (
	opOpen  = "open"
	opWrite = "write"
	opClose = "close"
)

// Config describes the log file and the sink's policies. The flags are fixed
// for the lifetime of a Sink.
type Config struct {
	// Directory receives the log file. It must already exist.
	Directory string
	// Prefix starts the file name: <Prefix>-<startMillis>.log.
	Prefix string
	// ExitOnFatal turns FATAL records and I/O failures into ErrFatal errors.
	ExitOnFatal bool
	// Debug enables DEBUG records and detailed failure reports.
	Debug bool
}

// Option customizes a Sink.
type Option func(*Sink)

// WithClock replaces the time source used for file names and timestamps.
func WithClock(c clock.Clock) Option {
	return func(s *Sink) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithConsole redirects failure reports, stderr by default.
func WithConsole(w io.Writer) Option {
	return func(s *Sink) {
		if w != nil {
			s.console = w
		}
	}
}

// WithLogger attaches a zap logger for the sink's own diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Sink) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSessionIDs replaces the session ID generator.
func WithSessionIDs(g id.Generator) Option {
	return func(s *Sink) {
		if g != nil {
			s.ids = g
		}
	}
}

// Sink serializes records into one log file. It is safe for concurrent use.
type Sink struct {
	cfg     Config
	clock   clock.Clock
	console io.Writer
	logger  *zap.Logger
	ids     id.Generator

	path      string
	session   string
	startedAt time.Time

	mu     sync.Mutex
	file   *os.File
	closed bool
}

// Open creates the log file and writes the start and configuration records.
// The file must not exist yet. Failures are reported on the console and
// returned as *InitError, marked with ErrFatal when cfg.ExitOnFatal is set.
func Open(cfg Config, opts ...Option) (*Sink, error) {
	s := &Sink{
		cfg:     cfg,
		clock:   clock.NewSystem(),
		console: os.Stderr,
		logger:  zap.NewNop(),
		ids:     id.NewUUIDGenerator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	metrics.Init()

	s.startedAt = s.clock.Now()
	start := s.startedAt.UnixMilli()
	name := fmt.Sprintf("%s-%d.log", cfg.Prefix, start)
	s.path = filepath.Join(cfg.Directory, name)

	session, err := s.ids.NewSessionID()
	if err != nil {
		s.logger.Warn("session id unavailable, falling back to start time", zap.Error(err))
		session = strconv.FormatInt(start, 10)
	}
	s.session = session

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		s.closed = true
		return nil, s.fail(opOpen, &InitError{Path: s.path, Err: err})
	}
	s.file = f
	metrics.IncOpenSinks()
	s.logger.Debug("log sink opened", zap.String("path", s.path), zap.String("session", s.session))

	echo := fmt.Sprintf("fileName: %s, logPath: %s, exitOnFatal: %t, debug: %t, session: %s",
		name, cfg.Directory, cfg.ExitOnFatal, cfg.Debug, s.session)
	for _, rec := range []struct {
		msg string
		sev Severity
	}{
		{msg: "Successfully started at " + strconv.FormatInt(start, 10), sev: Info},
		{msg: echo, sev: Debug},
	} {
		if err := s.writeLocked(selfTag, rec.msg, rec.sev, true); err != nil {
			_ = s.closeLocked()
			return nil, &InitError{Path: s.path, Err: err}
		}
	}
	return s, nil
}

// Path returns the log file path.
func (s *Sink) Path() string { return s.path }

// StartedAt returns the instant encoded in the file name.
func (s *Sink) StartedAt() time.Time { return s.startedAt }

// Session returns the session ID echoed in the configuration record.
func (s *Sink) Session() string { return s.session }

// Closed reports whether the file handle has been released.
func (s *Sink) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Write appends one record. DEBUG records are dropped unless debug is enabled;
// an unknown severity produces a single diagnostic line instead of the
// record. With ExitOnFatal set, a FATAL record closes the sink after it is
// written and the returned error is marked with ErrFatal.
//
// Writes after Close fail with ErrClosed, except DEBUG records while debug is
// disabled: those are dropped before the state is checked and return nil.
func (s *Sink) Write(tag, message string, sev Severity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(tag, message, sev, sev.public())
}

// Debug writes a DEBUG record.
func (s *Sink) Debug(tag, message string) error { return s.Write(tag, message, Debug) }

// Info writes an INFO record.
func (s *Sink) Info(tag, message string) error { return s.Write(tag, message, Info) }

// Error writes an ERROR record.
func (s *Sink) Error(tag, message string) error { return s.Write(tag, message, Error) }

// Fatal writes a FATAL record.
func (s *Sink) Fatal(tag, message string) error { return s.Write(tag, message, Fatal) }

// Close syncs and releases the log file. Closing twice is a no-op.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.closeLocked(); err != nil {
		return s.fail(opClose, err)
	}
	return nil
}

// writeLocked formats and appends one record. When known is false the
// record is replaced by an invalid-severity diagnostic.
func (s *Sink) writeLocked(tag, message string, sev Severity, known bool) error {
	if sev == Debug && !s.cfg.Debug {
		metrics.ObserveDropped()
		return nil
	}
	if s.closed {
		return s.fail(opWrite, &WriteError{Path: s.path, Err: ErrClosed})
	}

	line := s.format(tag, message, sev, known)
	if _, err := io.WriteString(s.file, line); err != nil {
		return s.fail(opWrite, &WriteError{Path: s.path, Err: err})
	}
	if !known {
		metrics.ObserveRecord("invalid")
		return nil
	}
	metrics.ObserveRecord(sev.label())

	if sev != Fatal || !s.cfg.ExitOnFatal {
		return nil
	}
	fmt.Fprintf(s.console, "anthrazit exit on fatal: %s. Please check the logs.\n", strings.TrimSuffix(line, "\n"))
	if err := s.closeLocked(); err != nil {
		return s.fail(opClose, err)
	}
	return errors.Mark(errors.Newf("fatal record from %s: %s", tag, message), ErrFatal)
}

func (s *Sink) format(tag, message string, sev Severity, known bool) string {
	ts := s.clock.Now().UnixMilli()
	if !known {
		return fmt.Sprintf("[%d] {INVALID} %s: invalid severity %d (tag: %s)\n", ts, selfTag, int(sev), tag)
	}
	return fmt.Sprintf("[%d] {%s} %s: %s\n", ts, sev, tag, message)
}

func (s *Sink) closeLocked() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.file == nil {
		return nil
	}
	f := s.file
	s.file = nil
	metrics.DecOpenSinks()

	if err := f.Sync(); err != nil {
		_ = f.Close()
		return &CloseError{Path: s.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &CloseError{Path: s.path, Err: err}
	}
	s.logger.Debug("log sink closed", zap.String("path", s.path))
	return nil
}

// fail is the single place that decides whether an I/O failure ends the
// process. Callers hold s.mu.
func (s *Sink) fail(op string, err error) error {
	metrics.ObserveIOFailure(op)
	s.logger.Error("log sink failure", zap.String("op", op), zap.String("path", s.path), zap.Error(err))
	fmt.Fprintf(s.console, "anthrazit error: %v\n", err)

	if s.cfg.ExitOnFatal {
		fmt.Fprintln(s.console, "anthrazit exit on fatal: bailing out")
		if cerr := s.closeLocked(); cerr != nil {
			metrics.ObserveIOFailure(opClose)
			fmt.Fprintf(s.console, "anthrazit error: %v\n", cerr)
		}
		return errors.Mark(err, ErrFatal)
	}
	if s.cfg.Debug {
		fmt.Fprintf(s.console, "%+v\n", errors.WithStackDepth(err, 1))
	}
	return err
}

// Package logsink writes leveled text records to a single timestamped log file.
//
// A Sink owns exactly one file, created fresh as
// <directory>/<prefix>-<startMillis>.log, and serializes every record through
// one mutex. Each record is one line:
//
//	[<epoch millis>] {<SEVERITY>} <tag>: <message>
//
// A write with an unknown severity produces a diagnostic line in place of
// the record:
//
//	[<epoch millis>] {INVALID} anthrazit: invalid severity <n> (tag: <tag>)
//
// Exception records start with a "<type>: <message>" summary line, in which
// line breaks of the message are escaped as \n, and embed their stack trace
// below it, one frame per line, each line indented by two tabs and prefixed
// "at ".
//
// The sink never terminates the process. When ExitOnFatal is set, a FATAL
// record or any I/O failure closes the sink and returns an error marked with
// ErrFatal; the application decides whether to exit (see IsFatal and
// ExitCode). Every failure is also reported on the console (stderr by
// default), so callers that ignore returned errors still see it.
package logsink

package logsink

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/errbase"
)

// framePrefix starts every stack frame line of an exception record.
const framePrefix = "\t\tat "

// wrapperPkgs hold error types that only annotate a cause. They are skipped
// when naming the type of a logged error.
var wrapperPkgs = []string{"github.com/cockroachdb/errors", "fmt"}

// summaryEscaper keeps the "<type>: <message>" summary on a single line.
var summaryEscaper = strings.NewReplacer("\r\n", `\n`, "\n", `\n`, "\r", `\r`)

// LogException writes err and its stack trace as one EXCEPTION record. The
// stack is the deepest one recorded in err's chain (errors built with
// github.com/cockroachdb/errors carry one); for other errors the stack of
// the LogException caller is used.
func (s *Sink) LogException(tag string, err error) error {
	msg := renderException(err, stackOf(err, 1))
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(tag, msg, exception, true)
}

// renderException formats "<type>: <message>" followed by one indented
// "at" line per frame. Line breaks inside the message are escaped.
func renderException(err error, trace errbase.StackTrace) string {
	var b strings.Builder
	if err == nil {
		b.WriteString("<nil>")
	} else {
		fmt.Fprintf(&b, "%s: %s", typeName(err), summaryEscaper.Replace(err.Error()))
	}
	for _, f := range trace {
		b.WriteByte('\n')
		b.WriteString(framePrefix)
		b.WriteString(describeFrame(f))
	}
	return b.String()
}

// typeName returns the type of the outermost error in the chain that is not
// a wrapper. A chain made only of wrappers is named after its innermost cause.
func typeName(err error) string {
	for e := err; e != nil; e = errors.UnwrapOnce(e) {
		if !isWrapper(e) {
			return fmt.Sprintf("%T", e)
		}
	}
	return fmt.Sprintf("%T", errors.UnwrapAll(err))
}

func isWrapper(err error) bool {
	t := reflect.TypeOf(err)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	pkg := t.PkgPath()
	for _, p := range wrapperPkgs {
		if pkg == p || strings.HasPrefix(pkg, p+"/") {
			return true
		}
	}
	return false
}

// stackOf returns the deepest stack recorded in err's chain. Errors without
// one are given the stack of the caller skip frames above stackOf.
func stackOf(err error, skip int) errbase.StackTrace {
	if trace := recordedStack(err); len(trace) > 0 {
		return trace
	}
	return recordedStack(errors.WithStackDepth(err, 1+skip))
}

func recordedStack(err error) errbase.StackTrace {
	var trace errbase.StackTrace
	for e := err; e != nil; e = errors.UnwrapOnce(e) {
		if p, ok := e.(errbase.StackTraceProvider); ok {
			trace = p.StackTrace()
		}
	}
	return trace
}

// describeFrame renders a stack frame as "function(file.go:line)".
func describeFrame(f errbase.StackFrame) string {
	return fmt.Sprintf("%n(%s:%d)", f, f, f)
}

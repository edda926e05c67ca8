package logsink

import "sync/atomic"

var defaultSink atomic.Pointer[Sink]

// SetDefault installs s as the process-wide sink returned by Default. Prefer
// passing a *Sink explicitly; the default exists for code that cannot take
// one, such as package-level helpers.
func SetDefault(s *Sink) {
	defaultSink.Store(s)
}

// Default returns the sink installed by SetDefault, or nil.
func Default() *Sink {
	return defaultSink.Load()
}

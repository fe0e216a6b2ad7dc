package recorder

import "sync/atomic"

// Session tracks one recording's running state. The flag is shared by the
// capture callbacks, the mixer and the controlling goroutine; it transitions
// running to stopped exactly once and is only ever read or cleared, never
// part of a compound update.
type Session struct {
	running atomic.Bool
}

// NewSession creates a session in the running state.
func NewSession() *Session {
	s := &Session{}
	s.running.Store(true)
	return s
}

// Running reports whether the session is still accepting audio.
func (s *Session) Running() bool {
	return s.running.Load()
}

// RequestStop clears the running flag. Safe to call from any goroutine,
// including a signal handler; repeated calls are no-ops.
func (s *Session) RequestStop() {
	s.running.Store(false)
}

package parallel

import "sync"

// signal is a one-shot, monotonic flag. Raising it closes a channel, so
// observers get a happens-before edge with whatever the raiser did first.
type signal struct {
	once sync.Once
	ch   chan struct{}
}

func newSignal() *signal {
	return &signal{ch: make(chan struct{})}
}

func (s *signal) raise() {
	s.once.Do(func() { close(s.ch) })
}

func (s *signal) raised() bool {
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}

func (s *signal) done() <-chan struct{} {
	return s.ch
}

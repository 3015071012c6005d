// Package notify carries the short, non-blocking messages shown after each
// mutation, and the optional sound that goes with them.
package notify

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

type Level int

const (
	Info Level = iota
	Success
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return "info"
}

type Notice struct {
	Level   Level
	Message string
}

// Sink receives notices. Implementations must not block.
type Sink interface {
	Notify(Notice)
}

// Func adapts a function to a Sink.
type Func func(Notice)

func (f Func) Notify(n Notice) { f(n) }

type nop struct{}

func (nop) Notify(Notice) {}

// Nop discards notices.
var Nop Sink = nop{}

// Multi fans a notice out to every sink.
func Multi(sinks ...Sink) Sink {
	return Func(func(n Notice) {
		for _, s := range sinks {
			if s != nil {
				s.Notify(n)
			}
		}
	})
}

// Log writes notices to a zap logger.
func Log(log *zap.Logger) Sink {
	return Func(func(n Notice) {
		switch n.Level {
		case Error:
			log.Error(n.Message)
		case Warning:
			log.Warn(n.Message)
		default:
			log.Info(n.Message, zap.Stringer("level", n.Level))
		}
	})
}

// Bell rings the terminal bell for successes and warnings. It is the
// client's only sound effect.
func Bell(w io.Writer) Sink {
	return Func(func(n Notice) {
		if n.Level == Success || n.Level == Warning {
			fmt.Fprint(w, "\a")
		}
	})
}

// Recorder keeps every notice; the TUI shows the last one as a toast.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of everything recorded.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Last returns the most recent notice.
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

// Drain returns and forgets everything recorded.
func (r *Recorder) Drain() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.notices
	r.notices = nil
	return out
}

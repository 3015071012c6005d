// Package session owns the in-memory task collection of a running client.
// Every mutation is applied through the tasklist reducer, followed by a full
// save and a notice.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Makepad-fr/todolist/internal/deadline"
	"github.com/Makepad-fr/todolist/internal/model"
	"github.com/Makepad-fr/todolist/internal/notify"
	"github.com/Makepad-fr/todolist/internal/parser"
	"github.com/Makepad-fr/todolist/internal/tasklist"
)

// Persister is the slice of store.Adapter a session needs.
type Persister interface {
	Load(ctx context.Context, def tasklist.Collection) tasklist.Collection
	Save(ctx context.Context, c tasklist.Collection) bool
}

type Session struct {
	tasks  tasklist.Collection
	store  Persister
	sink   notify.Sink
	now    func() time.Time
	saveOK bool
}

// Open loads the stored collection, or the seed tasks when nothing usable is
// stored. now may be nil.
func Open(ctx context.Context, store Persister, sink notify.Sink, now func() time.Time) *Session {
	if sink == nil {
		sink = notify.Nop
	}
	if now == nil {
		now = time.Now
	}
	s := &Session{store: store, sink: sink, now: now, saveOK: true}
	s.tasks = store.Load(ctx, tasklist.Collection(model.Seed(now())))
	return s
}

// Tasks returns the current collection. Callers must not modify it.
func (s *Session) Tasks() tasklist.Collection { return s.tasks }

func (s *Session) View(f tasklist.Filter) tasklist.View {
	return tasklist.NewView(s.tasks, f)
}

// Persisted reports whether the last save succeeded.
func (s *Session) Persisted() bool { return s.saveOK }

// Add creates a task from f without the parser.
func (s *Session) Add(ctx context.Context, f model.Fields) (model.Task, error) {
	t, err := model.New(f, s.now())
	if err != nil {
		return model.Task{}, err
	}
	s.insert(ctx, t, "Task added")
	return t, nil
}

// AddParsed creates a task through p, reporting which path was taken.
// p may be nil.
func (s *Session) AddParsed(ctx context.Context, p *parser.Parser, f model.Fields) (parser.Outcome, error) {
	out, err := p.Build(ctx, f, s.now())
	if err != nil {
		return out, err
	}
	s.AddOutcome(ctx, out)
	return out, nil
}

// AddOutcome inserts a task built by parser.Build. The TUI builds off the
// event loop and inserts here once the build has settled.
func (s *Session) AddOutcome(ctx context.Context, out parser.Outcome) {
	msg := "Task added (AI-structured)"
	if out.Path == parser.PathManual {
		msg = "Task added manually"
		if out.Err != nil && !errors.Is(out.Err, parser.ErrNoCredential) {
			s.sink.Notify(notify.Notice{Level: notify.Warning, Message: "AI parsing failed, saved your input as typed"})
		}
	}
	s.insert(ctx, out.Task, msg)
}

func (s *Session) insert(ctx context.Context, t model.Task, msg string) {
	next, ok := tasklist.Add(s.tasks, t)
	if !ok {
		return
	}
	s.commit(ctx, next, notify.Success, msg)
}

// Remove deletes the task with id. Unknown ids are ignored.
func (s *Session) Remove(ctx context.Context, id string) bool {
	t, _ := s.tasks.Get(id)
	next, ok := tasklist.Remove(s.tasks, id)
	if !ok {
		return false
	}
	s.commit(ctx, next, notify.Info, fmt.Sprintf("Deleted %q", t.Title))
	return true
}

// Toggle flips completion of the task with id. Unknown ids are ignored.
func (s *Session) Toggle(ctx context.Context, id string) bool {
	next, ok := tasklist.Toggle(s.tasks, id)
	if !ok {
		return false
	}
	t, _ := next.Get(id)
	msg := fmt.Sprintf("Reopened %q", t.Title)
	level := notify.Info
	if t.Completed {
		msg = fmt.Sprintf("Completed %q", t.Title)
		level = notify.Success
	}
	s.commit(ctx, next, level, msg)
	return true
}

// Reorder replaces the order with ids, which must be a permutation.
func (s *Session) Reorder(ctx context.Context, ids []string) error {
	next, err := tasklist.Reorder(s.tasks, ids)
	if err != nil {
		return err
	}
	s.commit(ctx, next, notify.Info, "Tasks reordered")
	return nil
}

// Move shifts the task with id by delta positions.
func (s *Session) Move(ctx context.Context, id string, delta int) bool {
	next, ok := tasklist.Move(s.tasks, id, delta)
	if !ok {
		return false
	}
	s.commit(ctx, next, notify.Info, "Task moved")
	return true
}

// Urgent sweeps the collection for incomplete urgent tasks.
func (s *Session) Urgent() []deadline.Alert {
	return deadline.Sweep(s.tasks, s.now())
}

func (s *Session) commit(ctx context.Context, next tasklist.Collection, level notify.Level, msg string) {
	s.tasks = next
	s.sink.Notify(notify.Notice{Level: level, Message: msg})
	s.saveOK = s.store.Save(ctx, next)
	if !s.saveOK {
		s.sink.Notify(notify.Notice{Level: notify.Warning, Message: "Could not save; changes are kept for this session only"})
	}
}

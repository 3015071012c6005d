package deadline

import (
	"time"

	"github.com/Makepad-fr/todolist/internal/model"
)

// Alert is an incomplete task whose deadline is urgent.
type Alert struct {
	Task      model.Task
	Remaining Remaining
}

// Sweep returns the urgent, incomplete tasks in the order given. It only
// reads tasks.
func Sweep(tasks []model.Task, now time.Time) []Alert {
	var out []Alert
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		if r := ForTask(t, now); r.Urgent {
			out = append(out, Alert{Task: t, Remaining: r})
		}
	}
	return out
}

// Tracker remembers which tasks were already reported so repeated sweeps
// only surface newly urgent ones.
type Tracker struct {
	seen map[string]bool
}

func NewTracker() *Tracker {
	return &Tracker{seen: map[string]bool{}}
}

// Fresh sweeps tasks and returns the alerts not returned by an earlier call.
// Tasks that stopped being urgent are forgotten.
func (tr *Tracker) Fresh(tasks []model.Task, now time.Time) []Alert {
	alerts := Sweep(tasks, now)
	current := make(map[string]bool, len(alerts))
	var fresh []Alert
	for _, a := range alerts {
		current[a.Task.ID] = true
		if !tr.seen[a.Task.ID] {
			fresh = append(fresh, a)
		}
	}
	tr.seen = current
	return fresh
}

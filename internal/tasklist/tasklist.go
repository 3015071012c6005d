// Package tasklist holds the pure operations over an ordered task collection.
// Every function returns a new slice and leaves its input untouched.
package tasklist

import (
	"errors"
	"slices"
	"strings"

	"github.com/Makepad-fr/todolist/internal/model"
)

var ErrNotPermutation = errors.New("tasklist: new order is not a permutation of the collection")

// Collection is the ordered set of all tasks; order is user-significant.
type Collection []model.Task

// Index returns the position of the task with id, or -1.
func (c Collection) Index(id string) int {
	return slices.IndexFunc(c, func(t model.Task) bool { return t.ID == id })
}

// Get returns the task with id.
func (c Collection) Get(id string) (model.Task, bool) {
	i := c.Index(id)
	if i < 0 {
		return model.Task{}, false
	}
	return c[i], true
}

// Add appends t. Tasks with a blank title or an id already present are ignored.
func Add(c Collection, t model.Task) (Collection, bool) {
	if strings.TrimSpace(t.Title) == "" || t.ID == "" || c.Index(t.ID) >= 0 {
		return c, false
	}
	out := make(Collection, 0, len(c)+1)
	out = append(out, c...)
	return append(out, t), true
}

// Remove deletes the task with id.
func Remove(c Collection, id string) (Collection, bool) {
	i := c.Index(id)
	if i < 0 {
		return c, false
	}
	out := make(Collection, 0, len(c)-1)
	out = append(out, c[:i]...)
	return append(out, c[i+1:]...), true
}

// Toggle flips Completed on the task with id and nothing else.
func Toggle(c Collection, id string) (Collection, bool) {
	i := c.Index(id)
	if i < 0 {
		return c, false
	}
	out := slices.Clone(c)
	out[i].Completed = !out[i].Completed
	return out, true
}

// RemoveAt deletes the task at position i of c. Out of range is a no-op.
func RemoveAt(c Collection, i int) (Collection, bool) {
	if i < 0 || i >= len(c) {
		return c, false
	}
	return Remove(c, c[i].ID)
}

// ToggleAt flips the task at position i of c. Out of range is a no-op.
func ToggleAt(c Collection, i int) (Collection, bool) {
	if i < 0 || i >= len(c) {
		return c, false
	}
	return Toggle(c, c[i].ID)
}

// Reorder returns the tasks of c in the order given by ids. ids must name
// every task exactly once.
func Reorder(c Collection, ids []string) (Collection, error) {
	if len(ids) != len(c) {
		return c, ErrNotPermutation
	}
	byID := make(map[string]model.Task, len(c))
	for _, t := range c {
		byID[t.ID] = t
	}
	out := make(Collection, 0, len(ids))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			return c, ErrNotPermutation
		}
		delete(byID, id)
		out = append(out, t)
	}
	return out, nil
}

// Move shifts the task with id by delta positions, clamped to the ends.
func Move(c Collection, id string, delta int) (Collection, bool) {
	from := c.Index(id)
	if from < 0 || delta == 0 {
		return c, false
	}
	to := min(max(from+delta, 0), len(c)-1)
	if to == from {
		return c, false
	}
	ids := IDs(c)
	ids = slices.Delete(ids, from, from+1)
	ids = slices.Insert(ids, to, id)
	out, err := Reorder(c, ids)
	if err != nil {
		return c, false
	}
	return out, true
}

// IDs returns the ids of c in order.
func IDs(c Collection) []string {
	ids := make([]string, len(c))
	for i, t := range c {
		ids[i] = t.ID
	}
	return ids
}

// Stats counts completed and pending tasks.
func Stats(c Collection) (done, pending int) {
	for _, t := range c {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

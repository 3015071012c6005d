package tasklist

import (
	"fmt"
	"strings"

	"github.com/Makepad-fr/todolist/internal/model"
)

// Filter selects which tasks a View shows.
type Filter int

const (
	All Filter = iota
	Active
	Completed
)

var filterNames = [...]string{"all", "active", "completed"}

func (f Filter) String() string {
	if f < All || f > Completed {
		return fmt.Sprintf("Filter(%d)", int(f))
	}
	return filterNames[f]
}

// Next cycles All -> Active -> Completed -> All.
func (f Filter) Next() Filter { return (f + 1) % 3 }

// ParseFilter accepts the names printed by String, case-insensitively.
func ParseFilter(s string) (Filter, error) {
	for i, n := range filterNames {
		if strings.EqualFold(strings.TrimSpace(s), n) {
			return Filter(i), nil
		}
	}
	return All, fmt.Errorf("tasklist: unknown filter %q (want all, active or completed)", s)
}

func (f Filter) Match(t model.Task) bool {
	switch f {
	case Active:
		return !t.Completed
	case Completed:
		return t.Completed
	}
	return true
}

// View is a filtered window over a collection. It keeps the underlying
// positions so view positions can be translated back before mutating.
type View struct {
	coll   Collection
	pos    []int
	Filter Filter
}

func NewView(c Collection, f Filter) View {
	v := View{coll: c, Filter: f}
	for i, t := range c {
		if f.Match(t) {
			v.pos = append(v.pos, i)
		}
	}
	return v
}

func (v View) Len() int { return len(v.pos) }

// At returns the task at view position i.
func (v View) At(i int) (model.Task, bool) {
	u := v.Underlying(i)
	if u < 0 {
		return model.Task{}, false
	}
	return v.coll[u], true
}

// ID returns the id at view position i, or "" when i is out of range.
func (v View) ID(i int) string {
	t, ok := v.At(i)
	if !ok {
		return ""
	}
	return t.ID
}

// Underlying translates view position i to the collection position, or -1.
func (v View) Underlying(i int) int {
	if i < 0 || i >= len(v.pos) {
		return -1
	}
	return v.pos[i]
}

// Tasks returns the visible tasks in order.
func (v View) Tasks() []model.Task {
	out := make([]model.Task, len(v.pos))
	for i, p := range v.pos {
		out[i] = v.coll[p]
	}
	return out
}

// Package deadline turns a task's date and time into a countdown and an
// urgency flag relative to a supplied instant.
package deadline

import (
	"fmt"
	"time"

	"github.com/Makepad-fr/todolist/internal/model"
)

const (
	PassedText  = "Deadline passed"
	InvalidText = "No deadline"

	// UrgentWithin is the remaining time under which a task is urgent.
	UrgentWithin = time.Hour
)

// Remaining is the evaluated countdown for one deadline.
type Remaining struct {
	Text   string
	Urgent bool
	Passed bool
	Left   time.Duration
}

// At combines date and clock in loc.
func At(date, clock string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(model.DateLayout+" "+model.TimeLayout, date+" "+clock, loc)
}

// TimeRemaining evaluates the deadline date+clock against now, in now's
// location.
func TimeRemaining(date, clock string, now time.Time) Remaining {
	due, err := At(date, clock, now.Location())
	if err != nil {
		return Remaining{Text: InvalidText}
	}
	left := due.Sub(now)
	if left <= 0 {
		return Remaining{Text: PassedText, Urgent: true, Passed: true}
	}
	h := int(left / time.Hour)
	m := int((left % time.Hour) / time.Minute)
	return Remaining{
		Text:   fmt.Sprintf("%dh %dm left", h, m),
		Urgent: left < UrgentWithin,
		Left:   left,
	}
}

// ForTask evaluates t's deadline.
func ForTask(t model.Task, now time.Time) Remaining {
	return TimeRemaining(t.DeadlineDate, t.DeadlineTime, now)
}

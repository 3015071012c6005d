package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Layouts for the deadline fields as they are stored.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Field defaults applied when the user leaves a field empty.
const (
	DefaultDescription = "-"
	DefaultDay         = "Unspecified"
	DefaultTime        = "00:00"
	StatusActive       = "Active"
)

var (
	ErrEmptyTitle  = errors.New("model: empty title")
	ErrInvalidDate = errors.New("model: invalid deadline date")
	ErrInvalidTime = errors.New("model: invalid deadline time")
)

// Task is one to-do item. It is created once and afterwards only its
// Completed flag or its position in a collection changes.
type Task struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Day          string `json:"day"`
	DeadlineDate string `json:"deadlineDate"`
	DeadlineTime string `json:"deadlineTime"`
	Status       string `json:"status"`
	Completed    bool   `json:"completed"`
}

// Fields is the raw, unvalidated input for a new task.
type Fields struct {
	Title       string
	Description string
	Day         string
	Date        string
	Time        string
}

// Trimmed returns f with surrounding whitespace removed from every field.
func (f Fields) Trimmed() Fields {
	return Fields{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Day:         strings.TrimSpace(f.Day),
		Date:        strings.TrimSpace(f.Date),
		Time:        strings.TrimSpace(f.Time),
	}
}

// New builds a task from f, filling defaults relative to now.
func New(f Fields, now time.Time) (Task, error) {
	f = f.Trimmed()
	if f.Title == "" {
		return Task{}, ErrEmptyTitle
	}
	if f.Date != "" && !ValidDate(f.Date) {
		return Task{}, fmt.Errorf("%w: %q", ErrInvalidDate, f.Date)
	}
	if f.Time != "" && !ValidTime(f.Time) {
		return Task{}, fmt.Errorf("%w: %q", ErrInvalidTime, f.Time)
	}

	t := Task{
		ID:           NewID(),
		Title:        f.Title,
		Description:  or(f.Description, DefaultDescription),
		Day:          or(f.Day, DefaultDay),
		DeadlineDate: or(f.Date, now.Format(DateLayout)),
		DeadlineTime: or(f.Time, DefaultTime),
		Status:       StatusActive,
	}
	return t, nil
}

// NewID returns a fresh task id. UUIDv7 embeds the creation timestamp, so
// ids sort by creation time.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func ValidTime(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// Seed is the collection used when nothing has been stored yet.
func Seed(now time.Time) []Task {
	day := now.Weekday().String()
	date := now.Format(DateLayout)
	return []Task{
		{
			ID:           NewID(),
			Title:        "Calculus Class",
			Description:  "Attending the Calculus Class at K.106",
			Day:          day,
			DeadlineDate: date,
			DeadlineTime: "22:00",
			Status:       StatusActive,
		},
		{
			ID:           NewID(),
			Title:        "Physics Class",
			Description:  "Attending the Physics Class at K.202",
			Day:          day,
			DeadlineDate: date,
			DeadlineTime: "13:00",
			Status:       StatusActive,
		},
	}
}

func or(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

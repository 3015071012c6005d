package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 10, 27, 9, 30, 0, 0, time.UTC)

func TestNew_Defaults(t *testing.T) {
	task, err := New(Fields{Title: "  Buy milk  "}, now)
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, DefaultDescription, task.Description)
	assert.Equal(t, DefaultDay, task.Day)
	assert.Equal(t, "2025-10-27", task.DeadlineDate)
	assert.Equal(t, DefaultTime, task.DeadlineTime)
	assert.Equal(t, StatusActive, task.Status)
	assert.False(t, task.Completed)
}

func TestNew_KeepsGivenFields(t *testing.T) {
	task, err := New(Fields{
		Title:       "Lab report",
		Description: "chapter 3",
		Day:         "Friday",
		Date:        "2025-10-31",
		Time:        "17:45",
	}, now)
	require.NoError(t, err)

	assert.Equal(t, "chapter 3", task.Description)
	assert.Equal(t, "Friday", task.Day)
	assert.Equal(t, "2025-10-31", task.DeadlineDate)
	assert.Equal(t, "17:45", task.DeadlineTime)
}

func TestNew_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		want   error
	}{
		{"empty title", Fields{}, ErrEmptyTitle},
		{"whitespace title", Fields{Title: " \t\n"}, ErrEmptyTitle},
		{"bad date", Fields{Title: "x", Date: "31/10/2025"}, ErrInvalidDate},
		{"bad time", Fields{Title: "x", Time: "10.00 PM"}, ErrInvalidTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.fields, now)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewID_Unique(t *testing.T) {
	seen := map[string]bool{}
	for range 500 {
		id := NewID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestSeed(t *testing.T) {
	seed := Seed(now)
	require.Len(t, seed, 2)
	assert.NotEqual(t, seed[0].ID, seed[1].ID)
	for _, task := range seed {
		assert.Equal(t, "2025-10-27", task.DeadlineDate)
		assert.True(t, ValidTime(task.DeadlineTime))
		assert.False(t, task.Completed)
	}
}

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/todolist/internal/model"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		in, want string
		err      error
	}{
		{`{"a":1}`, `{"a":1}`, nil},
		{"Here you go: {\"a\": {\"b\": 2}} hope it helps", `{"a": {"b": 2}}`, nil},
		{"```json\n{\"a\":1}\n```", `{"a":1}`, nil},
		{"no object here", "", ErrNoJSON},
		{"} backwards {", "", ErrNoJSON},
		{"", "", ErrNoJSON},
	}
	for _, tt := range tests {
		got, err := ExtractJSON(tt.in)
		if tt.err != nil {
			assert.ErrorIs(t, err, tt.err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestDecode(t *testing.T) {
	p, err := Decode(`{"title":"A","description":null,"time":"09:00"}`)
	require.NoError(t, err)
	require.NotNil(t, p.Title)
	assert.Equal(t, "A", *p.Title)
	assert.Nil(t, p.Description)
	assert.Nil(t, p.Day)
	assert.Equal(t, "09:00", *p.Time)

	_, err = Decode(`{}`)
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = Decode(`{"title": 5}`)
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	s := func(v string) *string { return &v }
	raw := model.Fields{Title: " raw title ", Description: "raw desc", Day: "", Date: "2025-12-01", Time: ""}

	got := Merge(Parsed{
		Title:       s("Parsed"),
		Description: nil,
		Day:         s("Monday"),
		Date:        s("01/12/2025"),
		Time:        s("18:00"),
	}, raw)

	assert.Equal(t, model.Fields{
		Title:       "Parsed",
		Description: "raw desc",
		Day:         "Monday",
		Date:        "2025-12-01",
		Time:        "18:00",
	}, got)

	assert.Equal(t, raw.Trimmed(), Merge(Parsed{}, raw))
}

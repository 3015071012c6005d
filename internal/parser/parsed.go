package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Makepad-fr/todolist/internal/model"
)

var (
	ErrNoJSON        = errors.New("parser: reply contains no JSON object")
	ErrMissingFields = errors.New("parser: reply has none of the task fields")
)

var fieldKeys = []string{"title", "description", "day", "date", "time"}

// Parsed is the object returned by the service. A nil field means the
// service did not recognize it.
type Parsed struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Day         *string `json:"day"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
}

// ExtractJSON returns the span from the first '{' to the last '}' of reply.
func ExtractJSON(reply string) (string, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end < start {
		return "", ErrNoJSON
	}
	return reply[start : end+1], nil
}

// Decode extracts and decodes the object in reply.
func Decode(reply string) (Parsed, error) {
	raw, err := ExtractJSON(reply)
	if err != nil {
		return Parsed{}, err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		return Parsed{}, fmt.Errorf("parser: decode reply: %w", err)
	}
	found := false
	for _, k := range fieldKeys {
		if _, ok := keys[k]; ok {
			found = true
			break
		}
	}
	if !found {
		return Parsed{}, ErrMissingFields
	}

	var p Parsed
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Parsed{}, fmt.Errorf("parser: decode reply: %w", err)
	}
	return p, nil
}

// Merge lays the recognized values of p over raw. Null, blank and "null"
// values keep the raw value; so do dates and times in the wrong format.
// Defaults for whatever is still empty are applied by model.New.
func Merge(p Parsed, raw model.Fields) model.Fields {
	raw = raw.Trimmed()
	return model.Fields{
		Title:       pick(p.Title, raw.Title, nil),
		Description: pick(p.Description, raw.Description, nil),
		Day:         pick(p.Day, raw.Day, nil),
		Date:        pick(p.Date, raw.Date, model.ValidDate),
		Time:        pick(p.Time, raw.Time, model.ValidTime),
	}
}

func pick(v *string, fallback string, valid func(string) bool) string {
	if v == nil {
		return fallback
	}
	s := strings.TrimSpace(*v)
	if s == "" || strings.EqualFold(s, "null") {
		return fallback
	}
	if valid != nil && !valid(s) {
		return fallback
	}
	return s
}

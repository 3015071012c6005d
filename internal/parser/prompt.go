package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/Makepad-fr/todolist/internal/model"
)

const instructions = `You are a task parsing assistant for a to-do list. Extract one task from the user's text.

Return ONLY a JSON object with exactly these keys:
  "title":       short task title
  "description": extra details
  "day":         day of the week the task is due, e.g. "Monday"
  "date":        due date as YYYY-MM-DD
  "time":        due time as 24h HH:MM

RULES:
1. Use null for any value the text does not state or clearly imply. Never omit a key.
2. Resolve relative dates ("tomorrow", "next friday") against the current date below.
3. If a date is known, "day" must be its weekday.
4. No markdown, no code fences, no explanation.`

// BuildPrompt builds the instruction sent for text, with now as the
// reference for relative dates.
func BuildPrompt(text string, now time.Time) string {
	var b strings.Builder
	b.WriteString(instructions)
	fmt.Fprintf(&b, "\n\nCURRENT DATE: %s (%s)\nCURRENT TIME: %s\n",
		now.Format(model.DateLayout), now.Weekday(), now.Format(model.TimeLayout))
	b.WriteString("\nUSER TEXT:\n")
	b.WriteString(strings.TrimSpace(text))
	return b.String()
}

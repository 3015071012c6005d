package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/todolist/internal/model"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldDay
	fieldDate
	fieldTime
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Notes", "Day", "Date", "Time"}

// form is the inline add panel. The title field takes free text when the
// parser is in use; the other fields act as fallbacks.
type form struct {
	inputs [fieldCount]textinput.Model
	focus  int
	useAI  bool
	err    string
}

func newForm() form {
	var f form
	placeholders := [fieldCount]string{
		"What needs doing? e.g. dentist tomorrow 2pm",
		"Optional details",
		"e.g. Monday",
		model.DateLayout,
		"HH:MM",
	}
	limits := [fieldCount]int{200, 500, 20, 10, 5}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		f.inputs[i] = ti
	}
	return f
}

func (f *form) open(useAI bool) tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = fieldTitle
	f.useAI = useAI
	f.err = ""
	return f.inputs[fieldTitle].Focus()
}

func (f *form) close() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

func (f *form) cycle(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.inputs[f.focus].Focus()
}

func (f form) fields() model.Fields {
	return model.Fields{
		Title:       f.inputs[fieldTitle].Value(),
		Description: f.inputs[fieldDescription].Value(),
		Day:         f.inputs[fieldDay].Value(),
		Date:        f.inputs[fieldDate].Value(),
		Time:        f.inputs[fieldTime].Value(),
	}
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f form) view(s styles, aiAvailable, parsing bool, spin string) string {
	var b strings.Builder
	head := s.title.Render("New task")
	switch {
	case parsing:
		head += "  " + s.accent.Render(spin+" structuring with AI…")
	case aiAvailable && f.useAI:
		head += "  " + s.accent.Render("AI on")
	case aiAvailable:
		head += "  " + s.muted.Render("AI off")
	}
	if f.err != "" {
		head += "  " + s.errorS.Render(f.err)
	}
	b.WriteString(head)
	for i, in := range f.inputs {
		label := s.muted.Render(padRight(fieldLabels[i], 6))
		if i == f.focus && !parsing {
			label = s.accent.Render(padRight(fieldLabels[i], 6))
		}
		b.WriteString("\n" + label + " " + in.View())
	}
	return b.String()
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

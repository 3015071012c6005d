package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/todolist/internal/gemini"
	"github.com/Makepad-fr/todolist/internal/notify"
	"github.com/Makepad-fr/todolist/internal/parser"
	"github.com/Makepad-fr/todolist/internal/session"
	"github.com/Makepad-fr/todolist/internal/store"
	"github.com/Makepad-fr/todolist/internal/tasklist"
)

type replyGenerator string

func (r replyGenerator) GenerateContent(context.Context, gemini.GenerateRequest) (*gemini.GenerateResponse, error) {
	return &gemini.GenerateResponse{Candidates: []gemini.Candidate{{
		Content: gemini.Content{Parts: []gemini.Part{{Text: string(r)}}},
	}}}, nil
}

type fixture struct {
	m      *Model
	sess   *session.Session
	alerts *notify.Recorder
	now    time.Time
}

func newFixture(t *testing.T, p *parser.Parser) *fixture {
	t.Helper()
	f := &fixture{now: time.Date(2025, 10, 27, 8, 0, 0, 0, time.UTC), alerts: &notify.Recorder{}}
	clock := func() time.Time { return f.now }
	rec := &notify.Recorder{}
	a := store.NewAdapter(store.NewMemory(), "tasks", nil)
	f.sess = session.Open(context.Background(), a, rec, clock)
	f.m = New(context.Background(), Options{
		Session: f.sess,
		Parser:  p,
		Notices: rec,
		Alerts:  f.alerts,
		Now:     clock,
	})
	return f
}

func (f *fixture) send(msg tea.Msg) tea.Cmd {
	_, cmd := f.m.Update(msg)
	return cmd
}

func (f *fixture) typeText(s string) {
	f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
)

// collect runs cmd and any batched commands it carries.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func titles(c tasklist.Collection) []string {
	out := make([]string, 0, len(c))
	for _, t := range c {
		out = append(out, t.Title)
	}
	return out
}

func TestModel_ActionsFollowFilteredView(t *testing.T) {
	f := newFixture(t, nil)

	f.m.list.Select(1)
	f.send(tea.KeyMsg{Type: tea.KeySpace})
	require.True(t, f.sess.Tasks()[1].Completed)

	f.send(runes("f"))
	f.send(runes("f"))
	require.Equal(t, tasklist.Completed, f.m.filter)
	require.Equal(t, 1, f.m.view.Len())

	f.send(runes("d"))
	assert.Equal(t, []string{"Calculus Class"}, titles(f.sess.Tasks()))
	require.NotNil(t, f.m.toast)
	assert.Contains(t, f.m.toast.Message, "Physics Class")
}

func TestModel_MoveSwapsWithinView(t *testing.T) {
	f := newFixture(t, nil)

	f.m.list.Select(1)
	f.send(runes("K"))
	assert.Equal(t, []string{"Physics Class", "Calculus Class"}, titles(f.sess.Tasks()))
	assert.Equal(t, 0, f.m.list.Index())

	f.send(runes("K"))
	assert.Equal(t, []string{"Physics Class", "Calculus Class"}, titles(f.sess.Tasks()))
}

func TestModel_HelpSuppressesEnter(t *testing.T) {
	f := newFixture(t, nil)

	f.send(runes("?"))
	require.True(t, f.m.showHelp)
	f.send(enter)
	assert.False(t, f.m.adding)
	assert.Contains(t, f.m.View(), "Keys")

	f.send(esc)
	assert.False(t, f.m.showHelp)
}

func TestModel_ManualAdd(t *testing.T) {
	f := newFixture(t, nil)

	f.send(runes("a"))
	require.True(t, f.m.adding)
	f.typeText("Write essay")
	f.send(tab)
	f.typeText("Two pages")
	f.send(enter)

	require.Len(t, f.sess.Tasks(), 3)
	added := f.sess.Tasks()[2]
	assert.Equal(t, "Write essay", added.Title)
	assert.Equal(t, "Two pages", added.Description)
	assert.False(t, f.m.adding)
	require.NotNil(t, f.m.toast)
	assert.Equal(t, "Task added", f.m.toast.Message)
}

func TestModel_EmptyTitleIsIgnored(t *testing.T) {
	f := newFixture(t, nil)

	f.send(runes("a"))
	f.send(enter)
	assert.True(t, f.m.adding)
	assert.Len(t, f.sess.Tasks(), 2)
}

func TestModel_InvalidDateKeepsForm(t *testing.T) {
	f := newFixture(t, nil)

	f.send(runes("a"))
	f.typeText("Dentist")
	for range fieldDate {
		f.send(tab)
	}
	f.typeText("tomorrow")
	f.send(enter)

	assert.True(t, f.m.adding)
	assert.Contains(t, f.m.form.err, "date")
	assert.Len(t, f.sess.Tasks(), 2)
}

func TestModel_StructuredAdd(t *testing.T) {
	gen := replyGenerator(`{"title":"Dentist","description":null,"day":"Tuesday","date":"2025-10-28","time":"14:00"}`)
	f := newFixture(t, parser.New(gen, parser.Config{Timeout: time.Second}, nil))

	f.send(runes("a"))
	require.True(t, f.m.form.useAI)
	f.typeText("dentist tomorrow 2pm")
	cmd := f.send(enter)
	require.True(t, f.m.parsing)
	require.NotNil(t, cmd)

	assert.Nil(t, f.send(enter), "enter is ignored while parsing")

	var parsed tea.Msg
	for _, msg := range collect(cmd) {
		if _, ok := msg.(parsedMsg); ok {
			parsed = msg
		}
	}
	require.NotNil(t, parsed)
	f.send(parsed)

	assert.False(t, f.m.parsing)
	assert.False(t, f.m.adding)
	require.Len(t, f.sess.Tasks(), 3)
	added := f.sess.Tasks()[2]
	assert.Equal(t, "Dentist", added.Title)
	assert.Equal(t, "2025-10-28", added.DeadlineDate)
	assert.Equal(t, "14:00", added.DeadlineTime)
	require.NotNil(t, f.m.toast)
	assert.Equal(t, "Task added (AI-structured)", f.m.toast.Message)
}

func TestModel_AIToggleOffUsesManualPath(t *testing.T) {
	gen := replyGenerator(`{"title":"Dentist","description":null,"day":null,"date":null,"time":null}`)
	f := newFixture(t, parser.New(gen, parser.Config{}, nil))

	f.send(runes("a"))
	f.send(tea.KeyMsg{Type: tea.KeyCtrlG})
	require.False(t, f.m.form.useAI)
	f.typeText("dentist tomorrow 2pm")
	f.send(enter)

	assert.False(t, f.m.parsing)
	require.Len(t, f.sess.Tasks(), 3)
	assert.Equal(t, "dentist tomorrow 2pm", f.sess.Tasks()[2].Title)
}

func TestModel_ThemeToggle(t *testing.T) {
	f := newFixture(t, nil)
	require.True(t, f.m.st.dark)

	f.send(tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.False(t, f.m.st.dark)

	f.send(runes("a"))
	f.send(tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.True(t, f.m.st.dark)
	assert.Empty(t, f.m.form.inputs[fieldTitle].Value())
}

func TestModel_UrgentAlertsOnTick(t *testing.T) {
	f := newFixture(t, nil)
	assert.Empty(t, f.alerts.Notices())

	f.now = time.Date(2025, 10, 27, 12, 30, 0, 0, time.UTC)
	f.send(tickMsg(f.now))
	notices := f.alerts.Drain()
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0].Message, "Physics Class")
	assert.Equal(t, notify.Warning, notices[0].Level)

	f.send(tickMsg(f.now.Add(time.Minute)))
	assert.Empty(t, f.alerts.Notices())
}

func TestModel_ToastClears(t *testing.T) {
	f := newFixture(t, nil)
	f.send(tea.KeyMsg{Type: tea.KeySpace})
	require.NotNil(t, f.m.toast)

	f.send(clearToastMsg(f.m.toastSeq - 1))
	assert.NotNil(t, f.m.toast)
	f.send(clearToastMsg(f.m.toastSeq))
	assert.Nil(t, f.m.toast)
}

func TestModel_QuitCancelsContext(t *testing.T) {
	f := newFixture(t, nil)

	cmd := f.send(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Error(t, f.m.ctx.Err())
}

func TestModel_View(t *testing.T) {
	f := newFixture(t, nil)
	f.send(tea.WindowSizeMsg{Width: 100, Height: 30})

	out := f.m.View()
	assert.Contains(t, out, "Todos")
	assert.Contains(t, out, "Calculus Class")
	assert.Contains(t, out, "14h 0m left")
}

// Package tui is the interactive Bubble Tea client.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/todolist/internal/deadline"
	"github.com/Makepad-fr/todolist/internal/model"
	"github.com/Makepad-fr/todolist/internal/notify"
	"github.com/Makepad-fr/todolist/internal/parser"
	"github.com/Makepad-fr/todolist/internal/session"
	"github.com/Makepad-fr/todolist/internal/tasklist"
	"github.com/Makepad-fr/todolist/internal/ui"
)

const toastFor = 4 * time.Second

type Options struct {
	Session *session.Session
	// Parser may be nil; the form then always takes the manual path.
	Parser  *parser.Parser
	// Notices must be a sink the session writes to. The latest notice is
	// shown as a toast.
	Notices *notify.Recorder
	// Alerts receives urgent deadline notices. May be nil.
	Alerts  notify.Sink
	Theme   string
	Tick    time.Duration
	Now     func() time.Time
}

type (
	tickMsg       time.Time
	clearToastMsg int
	parsedMsg     struct {
		out parser.Outcome
		err error
	}
)

// item adapts a task to bubbles/list.Item.
type item struct {
	task model.Task
	left deadline.Remaining
}

func (i item) FilterValue() string { return i.task.Title }

// Model is the root Bubble Tea model. All session mutations happen inside
// Update; only parser.Build runs off the event loop.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	sess    *session.Session
	parser  *parser.Parser
	notices *notify.Recorder
	alerts  notify.Sink
	tracker *deadline.Tracker
	now     func() time.Time
	tick    time.Duration

	keys keyMap
	help help.Model
	list list.Model
	spin spinner.Model
	form form
	st   styles

	filter tasklist.Filter
	view   tasklist.View

	adding   bool
	parsing  bool
	showHelp bool

	toast    *notify.Notice
	toastSeq int

	width, height int
}

// New builds the model. Cancelling ctx, or quitting, aborts an in-flight
// parse.
func New(ctx context.Context, opts Options) *Model {
	ctx, cancel := context.WithCancel(ctx)
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Tick <= 0 {
		opts.Tick = time.Minute
	}
	if opts.Notices == nil {
		opts.Notices = &notify.Recorder{}
	}
	if opts.Alerts == nil {
		opts.Alerts = notify.Nop
	}
	m := &Model{
		ctx:     ctx,
		cancel:  cancel,
		sess:    opts.Session,
		parser:  opts.Parser,
		notices: opts.Notices,
		alerts:  opts.Alerts,
		tracker: deadline.NewTracker(),
		now:     opts.Now,
		tick:    opts.Tick,
		keys:    defaultKeys(),
		help:    help.New(),
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		form:    newForm(),
		st:      newStyles(opts.Theme != "light"),
		width:   80,
		height:  24,
	}

	l := list.New(nil, delegate{st: m.st}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)
	l.Styles.PaginationStyle = m.st.help
	l.Styles.NoItems = m.st.muted
	m.list = l

	m.notices.Drain()
	m.refresh()
	m.layout()
	m.checkDeadlines()
	return m
}

// Run starts the program in the alternate screen and blocks until quit.
func Run(ctx context.Context, opts Options) error {
	m := New(ctx, opts)
	defer m.cancel()
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.nextTick()}
	if m.toast != nil {
		cmds = append(cmds, m.clearToastLater())
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tickMsg:
		m.refresh()
		m.checkDeadlines()
		return m, tea.Batch(m.nextTick(), m.clearToastLater())

	case clearToastMsg:
		if int(msg) == m.toastSeq {
			m.toast = nil
		}
		return m, nil

	case parsedMsg:
		return m, m.finishParse(msg)

	case spinner.TickMsg:
		if !m.parsing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	if m.adding {
		return m, m.form.update(msg)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if key.Matches(msg, m.keys.Theme) {
		m.setDark(!m.st.dark)
		return nil
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Cancel) {
			m.showHelp = false
		}
		return nil
	}
	if m.adding {
		return m.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return nil
	case key.Matches(msg, m.keys.Add):
		m.adding = true
		m.layout()
		return m.form.open(m.parser.Available())
	case key.Matches(msg, m.keys.Filter):
		m.filter = m.filter.Next()
		m.list.Select(0)
		m.refresh()
		return nil
	case key.Matches(msg, m.keys.Toggle):
		if id := m.selectedID(); id != "" {
			m.sess.Toggle(m.ctx, id)
			m.refresh()
			return m.showNotices()
		}
		return nil
	case key.Matches(msg, m.keys.Delete):
		if id := m.selectedID(); id != "" {
			m.sess.Remove(m.ctx, id)
			m.refresh()
			return m.showNotices()
		}
		return nil
	case key.Matches(msg, m.keys.Up):
		return m.move(-1)
	case key.Matches(msg, m.keys.Down):
		return m.move(1)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return cmd
}

func (m *Model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	if m.parsing {
		// the form is read-only until the parse settles
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.adding = false
		m.form.close()
		m.layout()
		return nil
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Next):
		return m.form.cycle(1)
	case key.Matches(msg, m.keys.Prev):
		return m.form.cycle(-1)
	case key.Matches(msg, m.keys.AI):
		if m.parser.Available() {
			m.form.useAI = !m.form.useAI
		}
		return nil
	}
	return m.form.update(msg)
}

func (m *Model) submit() tea.Cmd {
	f := m.form.fields()
	if strings.TrimSpace(f.Title) == "" {
		return nil
	}
	if m.form.useAI && m.parser.Available() {
		m.parsing = true
		m.form.err = ""
		m.form.close()
		return tea.Batch(m.spin.Tick, m.buildCmd(f))
	}
	if _, err := m.sess.Add(m.ctx, f); err != nil {
		m.form.err = formError(err)
		return nil
	}
	m.closeForm()
	return m.showNotices()
}

func (m *Model) buildCmd(f model.Fields) tea.Cmd {
	ctx, p, now := m.ctx, m.parser, m.now()
	return func() tea.Msg {
		out, err := p.Build(ctx, f, now)
		return parsedMsg{out: out, err: err}
	}
}

func (m *Model) finishParse(msg parsedMsg) tea.Cmd {
	m.parsing = false
	if msg.err != nil {
		m.form.err = formError(msg.err)
		return m.form.inputs[m.form.focus].Focus()
	}
	m.sess.AddOutcome(m.ctx, msg.out)
	m.closeForm()
	return m.showNotices()
}

func (m *Model) closeForm() {
	m.adding = false
	m.form.close()
	m.refresh()
	m.layout()
}

func formError(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidDate):
		return "date must be " + model.DateLayout
	case errors.Is(err, model.ErrInvalidTime):
		return "time must be HH:MM"
	case errors.Is(err, model.ErrEmptyTitle):
		return "title is required"
	}
	return err.Error()
}

// move swaps the selected task with its neighbour in the visible view.
func (m *Model) move(delta int) tea.Cmd {
	i := m.list.Index()
	j := i + delta
	if i < 0 || j < 0 || j >= m.view.Len() {
		return nil
	}
	ids := tasklist.IDs(m.sess.Tasks())
	a, b := m.view.Underlying(i), m.view.Underlying(j)
	ids[a], ids[b] = ids[b], ids[a]
	if err := m.sess.Reorder(m.ctx, ids); err != nil {
		return nil
	}
	m.refresh()
	m.list.Select(j)
	return m.showNotices()
}

func (m *Model) quit() tea.Cmd {
	m.cancel()
	return tea.Quit
}

func (m *Model) selectedID() string {
	return m.view.ID(m.list.Index())
}

func (m *Model) setDark(dark bool) {
	m.st = newStyles(dark)
	m.list.SetDelegate(delegate{st: m.st})
	m.list.Styles.PaginationStyle = m.st.help
	m.list.Styles.NoItems = m.st.muted
	name := "light"
	if dark {
		name = "dark"
	}
	_ = ui.SetTheme(name)
}

// refresh rebuilds the list items from the session under the active filter.
func (m *Model) refresh() {
	now := m.now()
	m.view = m.sess.View(m.filter)
	items := make([]list.Item, 0, m.view.Len())
	for _, t := range m.view.Tasks() {
		items = append(items, item{task: t, left: deadline.ForTask(t, now)})
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
}

func (m *Model) checkDeadlines() {
	for _, a := range m.tracker.Fresh(m.sess.Tasks(), m.now()) {
		n := notify.Notice{
			Level:   notify.Warning,
			Message: fmt.Sprintf("%q is due soon: %s", a.Task.Title, a.Remaining.Text),
		}
		m.alerts.Notify(n)
		m.setToast(n)
	}
}

func (m *Model) showNotices() tea.Cmd {
	var last *notify.Notice
	for _, n := range m.notices.Drain() {
		if last == nil || n.Level >= last.Level {
			last = &n
		}
	}
	if last == nil {
		return nil
	}
	m.setToast(*last)
	return m.clearToastLater()
}

func (m *Model) setToast(n notify.Notice) {
	m.toastSeq++
	m.toast = &n
}

func (m *Model) clearToastLater() tea.Cmd {
	if m.toast == nil {
		return nil
	}
	seq := m.toastSeq
	return tea.Tick(toastFor, func(time.Time) tea.Msg { return clearToastMsg(seq) })
}

func (m *Model) nextTick() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) layout() {
	w := max(m.width-4, 20)
	chrome := 8
	if m.adding {
		chrome += fieldCount + 1
	}
	m.list.SetSize(w, max(m.height-chrome, 3))
	m.help.Width = w
	for i := range m.form.inputs {
		m.form.inputs[i].Width = max(w-10, 10)
	}
}

func (m *Model) View() string {
	if m.showHelp {
		box := m.st.panel().Render(m.st.title.Render("Keys") + "\n\n" + m.help.FullHelpView(m.keys.FullHelp()))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}

	parts := []string{m.header(), m.list.View()}
	if m.adding {
		parts = append(parts, m.st.panel().Render(m.form.view(m.st, m.parser.Available(), m.parsing, m.spin.View())))
	}
	parts = append(parts, m.footer())
	return m.st.panel().Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *Model) header() string {
	done, pending := tasklist.Stats(m.sess.Tasks())
	total := done + pending
	counts := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		m.st.title.Render("Todos"),
		m.st.success.Render("✔"), done,
		m.st.pending.Render("•"), pending,
		m.st.accent.Render("Total"), total,
	)
	tabs := make([]string, 0, 3)
	for f := tasklist.All; f <= tasklist.Completed; f++ {
		name := f.String()
		if f == m.filter {
			tabs = append(tabs, m.st.accent.Render("["+name+"]"))
		} else {
			tabs = append(tabs, m.st.muted.Render(" "+name+" "))
		}
	}
	bar := m.st.muted.Render(ui.ProgressBar(done, total, 20))
	return counts + "\n" + strings.Join(tabs, " ") + "  " + bar + "\n"
}

func (m *Model) footer() string {
	line := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.adding {
		line = m.help.ShortHelpView(m.keys.formHelp())
	}
	if !m.sess.Persisted() {
		line = m.st.errorS.Render("not saved") + "  " + line
	}
	if m.toast == nil {
		return "\n" + line
	}
	return m.renderToast(*m.toast) + "\n" + line
}

func (m *Model) renderToast(n notify.Notice) string {
	switch n.Level {
	case notify.Success:
		return m.st.success.Render("✔ " + n.Message)
	case notify.Warning:
		return m.st.pending.Render("! " + n.Message)
	case notify.Error:
		return m.st.errorS.Render("✖ " + n.Message)
	}
	return m.st.muted.Render("• " + n.Message)
}

// delegate renders a task on two lines: checkbox and title, then the
// schedule and the time left.
type delegate struct{ st styles }

func (d delegate) Height() int                         { return 2 }
func (d delegate) Spacing() int                        { return 0 }
func (d delegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d delegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	it, ok := li.(item)
	if !ok {
		return
	}
	t := it.task

	box := d.st.muted.Render(d.st.boxUnchecked)
	title := t.Title
	if t.Completed {
		box = d.st.success.Render(d.st.boxChecked)
		title = d.st.done.Render(title)
	} else if it.left.Urgent {
		title = d.st.urgent.Render(title)
	}

	left := d.st.muted.Render(it.left.Text)
	switch {
	case t.Completed:
	case it.left.Urgent:
		left = d.st.urgent.Render(it.left.Text)
	case it.left.Passed:
		left = d.st.errorS.Render(it.left.Text)
	}
	sched := d.st.muted.Render(fmt.Sprintf("%s · %s %s", t.Day, t.DeadlineDate, t.DeadlineTime))

	prefix := "  "
	if index == m.Index() {
		prefix = d.st.selected.Render(">") + " "
	}
	fmt.Fprintf(w, "%s%s %s\n    %s  %s", prefix, box, title, sched, left)
}

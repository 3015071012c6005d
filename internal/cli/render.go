package cli

import (
	"fmt"
	"time"

	"github.com/Makepad-fr/todolist/internal/deadline"
	"github.com/Makepad-fr/todolist/internal/model"
	"github.com/Makepad-fr/todolist/internal/tasklist"
	"github.com/Makepad-fr/todolist/internal/ui"
)

// listLines renders the ls panel. Indexes are positions in v, which is what
// done, rm and mv take with the same --filter.
func listLines(all tasklist.Collection, v tasklist.View, group bool, now time.Time) []string {
	d, p := tasklist.Stats(all)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(ui.Current().Title, "Todos"),
		ui.C(ui.Current().Success, "✔"), d,
		ui.C(ui.Current().Pending, "•"), p,
		ui.C(ui.Current().Accent, "Total"), len(all),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(ui.Current().Muted, ui.ProgressBar(d, d+p, 28)))
	if v.Filter != tasklist.All {
		lines = append(lines, ui.C(ui.Current().Muted, "showing "+v.Filter.String()))
	}
	lines = append(lines, "")

	if group {
		lines = append(lines, groupLines(v, now)...)
	} else {
		lines = append(lines, flatLines(v, now, func(model.Task) bool { return true })...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Muted, "Tip: add with `todo add \"Buy milk\"`, or `todo add --ai \"call mum friday 6pm\"`"))
	return lines
}

func flatLines(v tasklist.View, now time.Time, keep func(model.Task) bool) []string {
	var out []string
	for i := range v.Len() {
		t, _ := v.At(i)
		if keep(t) {
			out = append(out, taskLine(i, t, now))
		}
	}
	if len(out) == 0 {
		return []string{ui.C(ui.Current().Muted, "no tasks")}
	}
	return out
}

func groupLines(v tasklist.View, now time.Time) []string {
	var lines []string
	lines = append(lines, ui.C(ui.Current().Accent, "Pending"))
	lines = append(lines, flatLines(v, now, func(t model.Task) bool { return !t.Completed })...)
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Accent, "Done"))
	lines = append(lines, flatLines(v, now, func(t model.Task) bool { return t.Completed })...)
	return lines
}

func taskLine(i int, t model.Task, now time.Time) string {
	th := ui.Current()
	idx := fmt.Sprintf("%2d.", i+1)
	box, color := th.BoxUnchecked, th.Muted
	if t.Completed {
		box, color = th.BoxChecked, th.Success
	}
	title := t.Title
	if len(title) > 60 {
		title = title[:57] + "..."
	}

	rem := deadline.ForTask(t, now)
	remColor := th.Muted
	if !t.Completed && rem.Urgent {
		remColor = th.Urgent
	}
	when := fmt.Sprintf("%s %s %s", t.Day, t.DeadlineDate, t.DeadlineTime)
	return fmt.Sprintf("%s %s %s  %s  %s",
		ui.C(th.Muted, idx), ui.C(color, box), title,
		ui.C(th.Muted, when), ui.C(remColor, rem.Text))
}

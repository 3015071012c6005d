package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/todolist/internal/notify"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	prevOut, prevErr := Out, Err
	Out, Err = &out, &errOut
	t.Cleanup(func() { Out, Err = prevOut, prevErr })
	return &out, &errOut
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 1))
}

func TestPanelString(t *testing.T) {
	require.NoError(t, SetTheme("mono"))
	t.Cleanup(func() { SetTheme("dark") })

	got := PanelString([]string{"ab", "\x1b[31mabcd\x1b[0m"})
	want := "+------+\n| ab   |\n| \x1b[31mabcd\x1b[0m |\n+------+\n"
	assert.Equal(t, want, got)
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("dark") })
	require.NoError(t, SetTheme(" Light "))
	assert.Equal(t, "light", Current().Name)
	assert.Error(t, SetTheme("neon"))
	assert.Equal(t, "light", Current().Name)
}

func TestNotifier(t *testing.T) {
	out, errOut := capture(t)
	SetColorForcing(false, true)
	t.Cleanup(func() { SetColorForcing(false, false) })

	n := Notifier()
	n.Notify(notify.Notice{Level: notify.Success, Message: "added"})
	n.Notify(notify.Notice{Level: notify.Warning, Message: "memory only"})
	n.Notify(notify.Notice{Level: notify.Error, Message: "boom"})
	n.Notify(notify.Notice{Level: notify.Info, Message: "moved"})

	assert.Equal(t, "✔ added\n• moved\n", out.String())
	assert.Equal(t, []string{"! memory only", "✖ boom"}, strings.Split(strings.TrimSpace(errOut.String()), "\n"))
}

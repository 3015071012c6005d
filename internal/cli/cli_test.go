package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/todolist/internal/model"
	"github.com/Makepad-fr/todolist/internal/tasklist"
	"github.com/Makepad-fr/todolist/internal/ui"
)

var testInfo = BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2025-10-27"}

// setup isolates config, data and credentials in a temp dir.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("TODO_STORAGE_BACKEND", "file")
	t.Setenv("TODO_LOGGER_LEVEL", "error")
	t.Chdir(dir)
	return dir
}

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errb bytes.Buffer
	oldOut, oldErr := ui.Out, ui.Err
	ui.Out, ui.Err = &out, &errb
	t.Cleanup(func() { ui.Out, ui.Err = oldOut, oldErr })

	code = Execute(context.Background(), testInfo, append([]string{"--no-color"}, args...))
	return code, out.String(), errb.String()
}

func stored(t *testing.T, dir string) []model.Task {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, "data", "todo", "tasks.json"))
	require.NoError(t, err)
	var tasks []model.Task
	require.NoError(t, json.Unmarshal(b, &tasks))
	return tasks
}

func titles(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func TestExecute_Usage(t *testing.T) {
	setup(t)

	code, stdout, _ := run(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, stdout, "Usage:")

	code, _, stderr := run(t, "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "unknown command")

	code, _, _ = run(t, "ls", "--bogus")
	assert.Equal(t, 2, code)

	code, _, _ = run(t, "done")
	assert.Equal(t, 2, code)
}

func TestExecute_Version(t *testing.T) {
	setup(t)
	code, stdout, _ := run(t, "--version")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "todo 1.2.3 (commit abc123")
}

func TestAddAndList(t *testing.T) {
	dir := setup(t)

	code, stdout, stderr := run(t, "add", "Buy", "milk", "--date", "2030-11-03", "--time", "09:00", "--desc", "2 liters")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Task added")

	tasks := stored(t, dir)
	require.Len(t, tasks, 3)
	assert.Equal(t, "Buy milk", tasks[2].Title)
	assert.Equal(t, "2 liters", tasks[2].Description)
	assert.Equal(t, "2030-11-03", tasks[2].DeadlineDate)

	code, stdout, _ = run(t, "ls")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Calculus Class")
	assert.Contains(t, stdout, " 3. ")
	assert.Contains(t, stdout, "Buy milk")
}

func TestAdd_InvalidInput(t *testing.T) {
	dir := setup(t)

	code, _, stderr := run(t, "add", "Essay", "--date", "tomorrow")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "date")

	code, _, _ = run(t, "add", "   ")
	assert.Equal(t, 2, code)

	_, err := os.Stat(filepath.Join(dir, "data", "todo", "tasks.json"))
	assert.True(t, os.IsNotExist(err), "nothing is saved for rejected input")
}

func TestAdd_AIWithoutKeyFallsBack(t *testing.T) {
	dir := setup(t)

	code, stdout, stderr := run(t, "add", "--ai", "dentist tomorrow 2pm")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Task added manually")
	assert.Equal(t, "dentist tomorrow 2pm", stored(t, dir)[2].Title)
}

func TestDoneAndRemoveUseFilteredPositions(t *testing.T) {
	dir := setup(t)

	code, stdout, _ := run(t, "done", "2")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, `Completed "Physics Class"`)

	// position 1 of the completed view is Physics, not Calculus
	code, _, _ = run(t, "rm", "1", "--filter", "completed")
	require.Equal(t, 0, code)
	assert.Equal(t, []string{"Calculus Class"}, titles(stored(t, dir)))

	code, _, stderr := run(t, "rm", "5")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "index out of range")

	code, _, stderr = run(t, "rm", "x")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "not a number")

	code, _, _ = run(t, "ls", "--filter", "someday")
	assert.Equal(t, 2, code)
}

func TestMove(t *testing.T) {
	dir := setup(t)
	code, _, _ := run(t, "add", "Essay")
	require.Equal(t, 0, code)

	code, stdout, _ := run(t, "mv", "3", "1")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Tasks reordered")
	assert.Equal(t, []string{"Essay", "Calculus Class", "Physics Class"}, titles(stored(t, dir)))
}

func TestMoveWithin_KeepsHiddenSlots(t *testing.T) {
	c := tasklist.Collection{
		{ID: "a", Title: "a"},
		{ID: "b", Title: "b", Completed: true},
		{ID: "c", Title: "c"},
		{ID: "d", Title: "d"},
	}
	v := tasklist.NewView(c, tasklist.Active)

	ids := moveWithin(c, v, 2, 0)
	assert.Equal(t, []string{"d", "b", "a", "c"}, ids)
}

func TestUrgent(t *testing.T) {
	setup(t)
	code, _, _ := run(t, "add", "Overdue report", "--date", "2020-01-01", "--time", "08:00")
	require.Equal(t, 0, code)

	code, _, stderr := run(t, "urgent")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "Overdue report: Deadline passed")
}

func TestAuth(t *testing.T) {
	setup(t)

	code, stdout, _ := run(t, "auth", "status")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "not logged in")

	var out bytes.Buffer
	ui.Out = &out
	t.Cleanup(func() { ui.Out = os.Stdout })
	root := newRootCmd(testInfo)
	root.SetIn(strings.NewReader("AIzaSyExampleKey0000\n"))
	root.SetArgs([]string{"auth", "login"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	cred, err := credentials().Get()
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.Equal(t, "file", cred.Source)
	assert.Equal(t, "AIzaSyExampleKey0000", cred.APIKey)

	code, stdout, _ = run(t, "auth", "status")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "source: file")
	assert.Contains(t, stdout, "AIza")
	assert.NotContains(t, stdout, "AIzaSyExampleKey0000")

	t.Setenv("GEMINI_API_KEY", "from-env-key-123456")
	code, stdout, _ = run(t, "auth", "logout")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "nothing to delete")

	t.Setenv("GEMINI_API_KEY", "")
	code, _, _ = run(t, "auth", "logout")
	require.Equal(t, 0, code)
	cred, err = credentials().Get()
	require.NoError(t, err)
	assert.Nil(t, cred)
}

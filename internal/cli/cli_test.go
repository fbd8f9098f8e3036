package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// env is an isolated config and data directory pair for one test.
type env struct {
	configDir string
	dataDir   string
}

func newEnv(t *testing.T) env {
	t.Helper()
	root := t.TempDir()
	e := env{
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
	}
	t.Setenv("TODOS_CONFIG_DIR", e.configDir)
	t.Setenv("TODOS_DATA_DIR", e.dataDir)
	t.Setenv("TODOS_BACKEND", "")
	t.Setenv("TODOS_KEY", "")
	t.Setenv("TODOS_VALIDATE", "")
	return e
}

// todo runs the CLI with args and returns stdout, stderr and the exit code.
func (e env) todo(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	code := run(root, args, &stderr)
	return stdout.String(), stderr.String(), code
}

func (e env) mustTodo(t *testing.T, args ...string) string {
	t.Helper()
	out, errOut, code := e.todo(t, args...)
	require.Equal(t, exitSuccess, code, "todo %v failed: %s", args, errOut)
	return out
}

func (e env) writeConfig(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, configFileExt), []byte(content), 0o644))
}

func (e env) listJSON(t *testing.T, args ...string) listOutput {
	t.Helper()
	out := e.mustTodo(t, append([]string{"list", "--json"}, args...)...)
	var got listOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	return got
}

func TestVersion(t *testing.T) {
	e := newEnv(t)
	out := e.mustTodo(t, "version")
	assert.Contains(t, out, "todo "+Version)
	assert.Contains(t, out, modulePath)
}

func TestInit_WritesConfigOnce(t *testing.T) {
	e := newEnv(t)

	out := e.mustTodo(t, "init", "--backend", "sqlite")
	assert.Contains(t, out, "Wrote ")
	assert.Contains(t, out, "Initialized sqlite backend")
	assert.FileExists(t, filepath.Join(e.dataDir, "todos.db"))

	data, err := os.ReadFile(filepath.Join(e.configDir, configFileExt))
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: sqlite")

	out = e.mustTodo(t, "init")
	assert.NotContains(t, out, "Wrote ")
	assert.Contains(t, out, "Initialized sqlite backend")
}

func TestInit_RejectsUnknownBackend(t *testing.T) {
	e := newEnv(t)
	_, errOut, code := e.todo(t, "init", "--backend", "redis")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, errOut, "unknown backend")
	assert.NoFileExists(t, filepath.Join(e.configDir, configFileExt))
}

func TestAddListRoundTrip(t *testing.T) {
	for _, backend := range []string{types.BackendFile, types.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			e := newEnv(t)
			e.writeConfig(t, "backend: "+backend+"\n")

			out := e.mustTodo(t, "add", "Buy", "milk")
			assert.Contains(t, out, "Added [ ] Buy milk")
			e.mustTodo(t, "add", "  Walk dog  ")

			got := e.listJSON(t)
			require.Len(t, got.Todos, 2)
			assert.Equal(t, "Walk dog", got.Todos[0].Text)
			assert.Equal(t, "Buy milk", got.Todos[1].Text)
			assert.Equal(t, 2, got.Remaining)
			assert.Equal(t, types.FilterAll, got.Filter)

			table := e.mustTodo(t, "list")
			assert.Contains(t, table, "Walk dog")
			assert.Contains(t, table, "2 remaining")
		})
	}
}

func TestAdd_BlankIsUserError(t *testing.T) {
	e := newEnv(t)
	_, errOut, code := e.todo(t, "add", "   ")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, errOut, errBlankText.Error())
	assert.Empty(t, e.listJSON(t).Todos)
}

func TestToggleFilterAndClear(t *testing.T) {
	e := newEnv(t)
	e.mustTodo(t, "add", "Buy milk")
	e.mustTodo(t, "add", "Walk dog")

	// Position 2 is "Buy milk": newest first.
	out := e.mustTodo(t, "toggle", "2")
	assert.Contains(t, out, "Completed [x] Buy milk")

	active := e.listJSON(t, "--filter", "active")
	require.Len(t, active.Todos, 1)
	assert.Equal(t, "Walk dog", active.Todos[0].Text)
	assert.Equal(t, 1, active.Remaining)

	completed := e.listJSON(t, "--filter", "completed")
	require.Len(t, completed.Todos, 1)
	assert.Equal(t, "Buy milk", completed.Todos[0].Text)

	out = e.mustTodo(t, "clear")
	assert.Equal(t, "Cleared 1 completed\n", out)
	out = e.mustTodo(t, "clear")
	assert.Equal(t, "Cleared 0 completed\n", out)

	assert.Empty(t, e.listJSON(t, "--filter", "completed").Todos)
	out = e.mustTodo(t, "list", "--filter", "completed")
	assert.Contains(t, out, "No completed todos.")
}

func TestToggleTwiceRestores(t *testing.T) {
	e := newEnv(t)
	e.mustTodo(t, "add", "Buy milk")

	e.mustTodo(t, "toggle", "1")
	out := e.mustTodo(t, "toggle", "1")
	assert.Contains(t, out, "Reopened [ ] Buy milk")
	assert.Equal(t, 1, e.listJSON(t).Remaining)
}

func TestList_InvalidFilter(t *testing.T) {
	e := newEnv(t)
	_, errOut, code := e.todo(t, "list", "--filter", "done")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, errOut, "invalid filter")
}

func TestEdit(t *testing.T) {
	e := newEnv(t)
	e.mustTodo(t, "add", "Buy milk")

	out := e.mustTodo(t, "edit", "1", "  Buy", "oat", "milk ")
	assert.Contains(t, out, "Edited [ ] Buy oat milk")

	_, _, code := e.todo(t, "edit", "1", "   ")
	assert.Equal(t, exitUserError, code)
	assert.Equal(t, "Buy oat milk", e.listJSON(t).Todos[0].Text)
}

func TestRemove_ByPositionAndID(t *testing.T) {
	e := newEnv(t)
	e.mustTodo(t, "add", "one")
	e.mustTodo(t, "add", "two")
	e.mustTodo(t, "add", "three")

	all := e.listJSON(t).Todos
	require.Len(t, all, 3)

	// Positions are resolved before anything is removed.
	out := e.mustTodo(t, "rm", "1", "2")
	assert.Contains(t, out, "Removed [ ] three")
	assert.Contains(t, out, "Removed [ ] two")

	out = e.mustTodo(t, "delete", all[2].ID)
	assert.Contains(t, out, "Removed [ ] one")
	assert.Empty(t, e.listJSON(t).Todos)

	_, errOut, code := e.todo(t, "rm", all[2].ID)
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, errOut, errNoMatch.Error())
}

func TestResolveRef_Errors(t *testing.T) {
	e := newEnv(t)
	e.mustTodo(t, "add", "one")

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{name: "position zero", ref: "0", want: errOutOfRange.Error()},
		{name: "position past end", ref: "5", want: errOutOfRange.Error()},
		{name: "unknown id", ref: "nope", want: errNoMatch.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errOut, code := e.todo(t, "toggle", tt.ref)
			assert.Equal(t, exitUserError, code)
			assert.Contains(t, errOut, tt.want)
		})
	}
}

func TestConfig_KeySeparatesLists(t *testing.T) {
	e := newEnv(t)
	e.mustTodo(t, "add", "default list")

	t.Setenv("TODOS_KEY", "work")
	assert.Empty(t, e.listJSON(t).Todos)
	e.mustTodo(t, "add", "work list")

	t.Setenv("TODOS_KEY", "")
	got := e.listJSON(t).Todos
	require.Len(t, got, 1)
	assert.Equal(t, "default list", got[0].Text)
	assert.FileExists(t, filepath.Join(e.dataDir, "work.json"))
	assert.FileExists(t, filepath.Join(e.dataDir, types.DefaultKey+".json"))
}

func TestConfig_UnknownBackend(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "backend: postgres\n")
	_, errOut, code := e.todo(t, "list")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, errOut, "postgres")
}

func TestConfig_MalformedFileIsSystemError(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "backend: [file\n")
	_, _, code := e.todo(t, "list")
	assert.Equal(t, exitSysError, code)
}

func TestCorruptSnapshotLoadsEmpty(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.MkdirAll(e.dataDir, 0o755))
	path := filepath.Join(e.dataDir, types.DefaultKey+".json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	got := e.listJSON(t)
	assert.Empty(t, got.Todos)
	assert.Equal(t, 0, got.Remaining)

	// The next effective mutation overwrites the corrupt snapshot.
	e.mustTodo(t, "add", "fresh start")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "["), string(data))
}

func TestStrictLoadFromConfig(t *testing.T) {
	seed := `[
		{"id":"a","text":"Buy milk","completed":false,"createdAt":1},
		{"text":"no id","completed":false,"createdAt":2},
		{"id":"a","text":"duplicate","completed":true,"createdAt":3},
		{"id":"b","text":"Walk dog","completed":true,"createdAt":4}
	]`
	seedSnapshot := func(t *testing.T, e env) {
		t.Helper()
		require.NoError(t, os.MkdirAll(e.dataDir, 0o755))
		path := filepath.Join(e.dataDir, types.DefaultKey+".json")
		require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))
	}

	t.Run("off by default", func(t *testing.T) {
		e := newEnv(t)
		seedSnapshot(t, e)
		assert.Len(t, e.listJSON(t).Todos, 4)
	})

	t.Run("env", func(t *testing.T) {
		e := newEnv(t)
		seedSnapshot(t, e)
		t.Setenv("TODOS_VALIDATE", "1")

		got := e.listJSON(t).Todos
		require.Len(t, got, 2)
		assert.Equal(t, "Buy milk", got[0].Text)
		assert.Equal(t, "Walk dog", got[1].Text)
	})

	t.Run("config file", func(t *testing.T) {
		e := newEnv(t)
		seedSnapshot(t, e)
		e.writeConfig(t, "backend: file\nvalidate: true\n")

		got := e.listJSON(t).Todos
		require.Len(t, got, 2)
		assert.Equal(t, []string{"a", "b"}, []string{got[0].ID, got[1].ID})
	})
}

func TestVerboseLogsToStderr(t *testing.T) {
	e := newEnv(t)
	_, errOut, code := e.todo(t, "--verbose", "list")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, errOut, "configuration resolved")
}

func TestUnknownCommand(t *testing.T) {
	e := newEnv(t)
	_, _, code := e.todo(t, "frobnicate")
	assert.Equal(t, exitUserError, code)
}

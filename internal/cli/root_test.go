package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRepo(t *testing.T) {
	assert.Equal(t,
		filepath.FromSlash("/work/project"),
		resolveRepo(filepath.FromSlash("/work/project/.git/rebase-merge/git-rebase-todo")))
	// Outside a .git layout the file's directory is the best guess.
	assert.Equal(t,
		filepath.FromSlash("/tmp/somewhere"),
		resolveRepo(filepath.FromSlash("/tmp/somewhere/todo")))
}

func TestBootstrapCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "git-rebase-todo")
	require.NoError(t, os.WriteFile(path, []byte("# Rebase abc123..def456 onto 789abc (2 commands)\npick abc123 first\n"), 0o644))

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs([]string{"bootstrap", "--root", "/assets", path})
	require.NoError(t, rootCmd.Execute())

	html := out.String()
	assert.Contains(t, html, "window.bootstrap = ")
	assert.Contains(t, html, `"ref":"abc123"`)
	assert.Contains(t, html, `/assets/rebase.js`)
	assert.NotContains(t, html, "#{root}")
}

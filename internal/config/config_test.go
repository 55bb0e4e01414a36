package config

import (
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDecodeOverridesDefaults(t *testing.T) {
	config := &Config{Avatars: true, Keys: DefaultKeys()}
	_, err := toml.Decode(`
avatars = false
log_file = "/tmp/rebase-edit.log"

[keys]
abort = ["ctrl+c"]
`, config)
	require.NoError(t, err)

	assert.False(t, config.Avatars)
	assert.Equal(t, "/tmp/rebase-edit.log", config.LogFile)
	assert.Equal(t, []string{"ctrl+c"}, config.Keys.Abort)
	// Untouched bindings keep their defaults.
	assert.Equal(t, []string{"enter"}, config.Keys.Start)
}

func TestGetKeyMap(t *testing.T) {
	config := &Config{Keys: DefaultKeys()}
	keymap := config.GetKeyMap()
	assert.True(t, key.Matches(keyMsg("j"), keymap.Down))
	assert.True(t, key.Matches(keyMsg("J"), keymap.MoveDown))
	assert.False(t, key.Matches(keyMsg("x"), keymap.Drop))
}

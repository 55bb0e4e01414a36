package config

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMappings holds one binding per surface command. The toml form carries
// key lists; GetKeyMap converts them into bubbles bindings.
type KeyMappings[T any] struct {
	Up       T `toml:"up"`
	Down     T `toml:"down"`
	MoveUp   T `toml:"move_up"`
	MoveDown T `toml:"move_down"`
	Pick     T `toml:"pick"`
	Reword   T `toml:"reword"`
	Edit     T `toml:"edit"`
	Squash   T `toml:"squash"`
	Fixup    T `toml:"fixup"`
	Drop     T `toml:"drop"`
	Start    T `toml:"start"`
	Abort    T `toml:"abort"`
	Cancel   T `toml:"cancel"`
}

func DefaultKeys() KeyMappings[[]string] {
	return KeyMappings[[]string]{
		Up:       []string{"up", "k"},
		Down:     []string{"down", "j"},
		MoveUp:   []string{"shift+up", "K"},
		MoveDown: []string{"shift+down", "J"},
		Pick:     []string{"p"},
		Reword:   []string{"r"},
		Edit:     []string{"e"},
		Squash:   []string{"s"},
		Fixup:    []string{"f"},
		Drop:     []string{"d"},
		Start:    []string{"enter"},
		Abort:    []string{"a"},
		Cancel:   []string{"esc", "q"},
	}
}

func (c *Config) GetKeyMap() KeyMappings[key.Binding] {
	keys := c.Keys
	return KeyMappings[key.Binding]{
		Up:       binding(keys.Up, "up"),
		Down:     binding(keys.Down, "down"),
		MoveUp:   binding(keys.MoveUp, "move entry up"),
		MoveDown: binding(keys.MoveDown, "move entry down"),
		Pick:     binding(keys.Pick, "pick"),
		Reword:   binding(keys.Reword, "reword"),
		Edit:     binding(keys.Edit, "edit"),
		Squash:   binding(keys.Squash, "squash"),
		Fixup:    binding(keys.Fixup, "fixup"),
		Drop:     binding(keys.Drop, "drop"),
		Start:    binding(keys.Start, "start rebase"),
		Abort:    binding(keys.Abort, "abort rebase"),
		Cancel:   binding(keys.Cancel, "cancel"),
	}
}

func binding(keys []string, help string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), help),
	)
}

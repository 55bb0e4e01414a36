package test

import (
	"reflect"

	tea "github.com/charmbracelet/bubbletea"
)

// Simulate drives a model the way a bubbletea program would: the command
// queue is drained breadth-first, every produced message is offered to the
// observers and then applied to the model. It returns the final model.
func Simulate(model tea.Model, first tea.Cmd, observers ...func(tea.Msg)) tea.Model {
	queue := []tea.Cmd{first}
	for len(queue) > 0 {
		var cmd tea.Cmd
		cmd, queue = queue[0], queue[1:]
		if cmd == nil {
			continue
		}
		msg := cmd()
		if msg == nil {
			continue
		}
		switch v := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, v...)
			continue
		case tea.QuitMsg:
			return model
		}
		// Sequence() wraps its commands in an unexported slice type.
		if slice, ok := asCmdSlice(msg); ok {
			queue = append(queue, slice...)
			continue
		}
		for _, observe := range observers {
			observe(msg)
		}
		var next tea.Cmd
		model, next = model.Update(msg)
		if next != nil {
			queue = append(queue, next)
		}
	}
	return model
}

// Type produces one key message per rune.
func Type(runes string) tea.Cmd {
	press := func(r rune) tea.Cmd {
		return func() tea.Msg {
			return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		}
	}
	var cmds []tea.Cmd
	for _, r := range runes {
		cmds = append(cmds, press(r))
	}
	return tea.Sequence(cmds...)
}

// Press produces a single special-key message.
func Press(key tea.KeyType) tea.Cmd {
	return func() tea.Msg {
		return tea.KeyMsg{Type: key}
	}
}

var cmdType = reflect.TypeOf((tea.Cmd)(nil))

// asCmdSlice returns the contents if msg is any named slice whose elements
// are tea.Cmd.
func asCmdSlice(msg tea.Msg) ([]tea.Cmd, bool) {
	val := reflect.ValueOf(msg)
	if val.Kind() != reflect.Slice || !val.Type().Elem().AssignableTo(cmdType) {
		return nil, false
	}
	out := make([]tea.Cmd, val.Len())
	for i := 0; i < val.Len(); i++ {
		out[i] = val.Index(i).Interface().(tea.Cmd)
	}
	return out, true
}

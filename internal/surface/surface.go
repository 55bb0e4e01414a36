package surface

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idursun/rebase-edit/internal/config"
	"github.com/idursun/rebase-edit/internal/git"
	"github.com/idursun/rebase-edit/internal/plan"
	"github.com/idursun/rebase-edit/internal/protocol"
)

// Model is a terminal presentation surface. It holds no truth of its own:
// everything it shows came from a rebase/didChange snapshot, and every
// mutation it wants goes out as a protocol message.
type Model struct {
	transport protocol.Transport
	seq       *protocol.Sequence
	keymap    config.KeyMappings[key.Binding]
	help      help.Model
	styles    styles

	model        protocol.PlanModel
	commitsByRef map[string]git.CommitSummary
	cursor       int
	confirmAbort bool
	width        int
	height       int
}

type (
	planChangedMsg protocol.PlanModel
	closedMsg      struct{}
)

func New(transport protocol.Transport, seq *protocol.Sequence) *Model {
	if seq == nil {
		seq = protocol.DefaultSequence
	}
	return &Model{
		transport: transport,
		seq:       seq,
		keymap:    config.Current.GetKeyMap(),
		help:      help.New(),
		styles:    defaultStyles(),
		width:     80,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.listen, m.send(protocol.MethodReady, nil))
}

// listen blocks for the next snapshot push. Anything that is not a
// rebase/didChange is skipped; there is no other core-to-surface traffic.
func (m *Model) listen() tea.Msg {
	for {
		msg, err := m.transport.Receive()
		if err != nil {
			return closedMsg{}
		}
		if msg.Method != protocol.MethodDidChange {
			continue
		}
		var model protocol.PlanModel
		if err := json.Unmarshal(msg.Params, &model); err != nil {
			log.Println("dropping malformed snapshot:", err)
			continue
		}
		return planChangedMsg(model)
	}
}

func (m *Model) send(method string, params any) tea.Cmd {
	return func() tea.Msg {
		msg, err := protocol.NewMessage(m.seq, method, params)
		if err == nil {
			err = m.transport.Send(msg)
		}
		if err != nil {
			log.Println("send failed:", err)
		}
		return nil
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case planChangedMsg:
		m.model = protocol.PlanModel(msg)
		m.commitsByRef = make(map[string]git.CommitSummary, len(m.model.Commits))
		for _, commit := range m.model.Commits {
			m.commitsByRef[commit.Ref] = commit
		}
		if m.cursor >= len(m.model.Entries) {
			m.cursor = max(len(m.model.Entries)-1, 0)
		}
		return m, m.listen
	case closedMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.confirmAbort {
		m.confirmAbort = false
		if msg.String() == "y" {
			return m.send(protocol.MethodAbort, nil)
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.model.Entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keymap.MoveUp):
		return m.moveSelected(false)
	case key.Matches(msg, m.keymap.MoveDown):
		return m.moveSelected(true)
	case key.Matches(msg, m.keymap.Pick):
		return m.changeSelected(plan.Pick)
	case key.Matches(msg, m.keymap.Reword):
		return m.changeSelected(plan.Reword)
	case key.Matches(msg, m.keymap.Edit):
		return m.changeSelected(plan.Edit)
	case key.Matches(msg, m.keymap.Squash):
		return m.changeSelected(plan.Squash)
	case key.Matches(msg, m.keymap.Fixup):
		return m.changeSelected(plan.Fixup)
	case key.Matches(msg, m.keymap.Drop):
		return m.changeSelected(plan.Drop)
	case key.Matches(msg, m.keymap.Start):
		return m.send(protocol.MethodStart, nil)
	case key.Matches(msg, m.keymap.Abort):
		m.confirmAbort = true
	case key.Matches(msg, m.keymap.Cancel):
		return tea.Quit
	}
	return nil
}

func (m *Model) selectedRef() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.model.Entries) {
		return "", false
	}
	return m.model.Entries[m.cursor].Ref, true
}

func (m *Model) moveSelected(down bool) tea.Cmd {
	ref, ok := m.selectedRef()
	if !ok {
		return nil
	}
	// Track the motion locally so the cursor follows the entry once the
	// fresh snapshot arrives.
	if down && m.cursor < len(m.model.Entries)-1 {
		m.cursor++
	} else if !down && m.cursor > 0 {
		m.cursor--
	}
	return m.send(protocol.MethodMoveEntry, protocol.MoveEntryParams{Ref: ref, Down: down})
}

func (m *Model) changeSelected(action plan.Action) tea.Cmd {
	ref, ok := m.selectedRef()
	if !ok {
		return nil
	}
	return m.send(protocol.MethodChangeEntry, protocol.ChangeEntryParams{Ref: ref, Action: string(action)})
}

func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keymap.Up,
		m.keymap.Down,
		m.keymap.MoveUp,
		m.keymap.MoveDown,
		m.keymap.Start,
		m.keymap.Abort,
		m.keymap.Cancel,
	}
}

func (m *Model) View() string {
	var w strings.Builder
	w.WriteString(m.renderHeader())
	w.WriteString("\n\n")
	for i, entry := range m.model.Entries {
		w.WriteString(m.renderEntry(i, entry))
		w.WriteString("\n")
	}
	w.WriteString("\n")
	if m.confirmAbort {
		w.WriteString(m.styles.confirm.Render("Abort the rebase? All changes to the plan will be lost. (y/n)"))
	} else {
		w.WriteString(m.help.ShortHelpView(m.ShortHelp()))
	}
	return w.String()
}

func (m *Model) renderHeader() string {
	header := m.model.Header
	title := fmt.Sprintf("Rebase %s onto %s", formatRange(header.From, header.To), header.Onto)
	if header.Branch != "" {
		title = header.Branch + ": " + title
	}
	return m.styles.header.Render(truncate(title, m.width))
}

func formatRange(from, to string) string {
	if to == "" {
		return from
	}
	return from + ".." + to
}

func (m *Model) renderEntry(index int, entry plan.Entry) string {
	marker := "  "
	lineStyle := m.styles.text
	if index == m.cursor {
		marker = m.styles.marker.Render("❯ ")
		lineStyle = m.styles.selected
	}

	actionStyle, ok := m.styles.actions[entry.Action]
	if !ok {
		actionStyle = m.styles.text
	}
	line := fmt.Sprintf("%s%s %s %s",
		marker,
		actionStyle.Render(fmt.Sprintf("%-6s", entry.Action)),
		m.styles.ref.Render(entry.Ref),
		lineStyle.Render(truncate(entry.Message, m.width/2)),
	)
	if commit, ok := m.commitsByRef[entry.Ref]; ok {
		detail := fmt.Sprintf("%s, %s", commit.Author, commit.RelativeDate)
		line += m.styles.dimmed.Render("  " + truncate(detail, m.width/3))
	}
	return line
}

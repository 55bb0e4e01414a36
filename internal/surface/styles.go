package surface

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"

	"github.com/idursun/rebase-edit/internal/plan"
)

type styles struct {
	header   lipgloss.Style
	marker   lipgloss.Style
	selected lipgloss.Style
	text     lipgloss.Style
	ref      lipgloss.Style
	dimmed   lipgloss.Style
	confirm  lipgloss.Style
	actions  map[plan.Action]lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		header:   lipgloss.NewStyle().Bold(true),
		marker:   lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		selected: lipgloss.NewStyle().Bold(true),
		text:     lipgloss.NewStyle(),
		ref:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		dimmed:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		confirm:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		actions: map[plan.Action]lipgloss.Style{
			plan.Pick:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
			plan.Reword: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
			plan.Edit:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
			plan.Squash: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
			plan.Fixup:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
			plan.Break:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
			plan.Drop:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Strikethrough(true),
		},
	}
}

// truncate cuts s to the given display width, ending with an ellipsis when
// anything was cut. Widths are grapheme-cluster widths, not byte counts.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}
	var b []byte
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if used+w > width-1 {
			break
		}
		b = append(b, g.Bytes()...)
		used += w
	}
	return string(b) + "…"
}

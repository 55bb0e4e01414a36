package edit

import (
	"strings"

	"github.com/idursun/rebase-edit/internal/plan"
)

// Range is a half-open byte range [Start, End) into the document text.
type Range struct {
	Start int
	End   int
}

// TextEdit replaces one range of the document with new text. All ranges in a
// batch refer to the same pre-edit snapshot of the document.
type TextEdit struct {
	Range   Range
	NewText string
}

// Mutation is a single structural change requested against the current plan.
type Mutation interface {
	isMutation()
}

// ChangeAction rewrites the action of the entry identified by Ref.
type ChangeAction struct {
	Ref    string
	Action plan.Action
}

// Move reorders the entry identified by Ref one position up or down.
type Move struct {
	Ref  string
	Down bool
}

// Abort empties the instruction file, which cancels the whole rebase.
type Abort struct{}

// Start accepts the instruction file as currently written.
type Start struct{}

func (ChangeAction) isMutation() {}
func (Move) isMutation()         {}
func (Abort) isMutation()        {}
func (Start) isMutation()        {}

// Outcome is what applying a mutation requires of the host: zero or more text
// edits, optionally persisting the document, and optionally closing the
// presentation surface.
type Outcome struct {
	Edits        []TextEdit
	Persist      bool
	CloseSurface bool
}

// PlanEdits computes the text edits realizing mutation against text, using
// the plan parsed from that same text. Mutations referencing an unknown ref
// and boundary-violating moves yield an empty outcome; such requests are
// stale ones racing a text change, not errors.
func PlanEdits(p plan.Plan, text string, mutation Mutation) Outcome {
	switch m := mutation.(type) {
	case ChangeAction:
		entry, _, ok := p.FindEntry(m.Ref)
		if !ok {
			return Outcome{}
		}
		entry.Action = m.Action
		start, end := lineBounds(text, entry.Offset)
		return Outcome{Edits: []TextEdit{{Range: Range{start, end}, NewText: entry.Line()}}}
	case Move:
		entry, index, ok := p.FindEntry(m.Ref)
		if !ok {
			return Outcome{}
		}
		if m.Down && index == len(p.Entries)-1 || !m.Down && index == 0 {
			return Outcome{}
		}
		start, end := lineBounds(text, entry.Offset)
		next := end
		if next < len(text) {
			next++ // include the newline
		}
		line := lineIndexAt(text, start)
		insertAt := offsetOfLine(text, line-1)
		insertText := entry.Line() + "\n"
		if m.Down {
			insertAt = offsetOfLine(text, line+2)
			if insertAt == len(text) && !strings.HasSuffix(text, "\n") {
				// The document's last line is unterminated; gluing the
				// reinserted line after it would merge the two entries.
				insertText = "\n" + entry.Line()
			}
		}
		return Outcome{Edits: []TextEdit{
			{Range: Range{start, next}},
			{Range: Range{insertAt, insertAt}, NewText: insertText},
		}}
	case Abort:
		return Outcome{
			Edits:        []TextEdit{{Range: Range{0, len(text)}}},
			Persist:      true,
			CloseSurface: true,
		}
	case Start:
		return Outcome{Persist: true, CloseSurface: true}
	}
	return Outcome{}
}

// lineBounds returns the [start, end) range of the line containing offset,
// excluding the trailing newline.
func lineBounds(text string, offset int) (int, int) {
	start := strings.LastIndexByte(text[:offset], '\n') + 1
	end := strings.IndexByte(text[offset:], '\n')
	if end < 0 {
		return start, len(text)
	}
	return start, offset + end
}

func lineIndexAt(text string, offset int) int {
	return strings.Count(text[:offset], "\n")
}

// offsetOfLine returns the byte offset of the start of the given line, or
// len(text) when the line is past the end of the document.
func offsetOfLine(text string, line int) int {
	if line <= 0 {
		return 0
	}
	offset := 0
	for ; line > 0; line-- {
		next := strings.IndexByte(text[offset:], '\n')
		if next < 0 {
			return len(text)
		}
		offset += next + 1
	}
	return offset
}

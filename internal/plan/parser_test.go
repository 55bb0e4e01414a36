package plan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTodo = "# Rebase abc123..def456 onto 789abc onto\npick abc123 first commit\nsquash def456 second commit\n"

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		header  Header
		entries []Entry
	}{
		{
			name:   "header and two entries",
			text:   sampleTodo,
			header: Header{From: "abc123", To: "def456", Onto: "789abc"},
			entries: []Entry{
				{Offset: 41, Action: Pick, Ref: "abc123", Message: "first commit"},
				{Offset: 66, Action: Squash, Ref: "def456", Message: "second commit"},
			},
		},
		{
			name:   "header without to ref",
			text:   "# Rebase abc123 onto 789abc (1 command)\npick abc123 only\n",
			header: Header{From: "abc123", Onto: "789abc"},
			entries: []Entry{
				{Offset: 40, Action: Pick, Ref: "abc123", Message: "only"},
			},
		},
		{
			name: "missing header degrades to empty fields",
			text: "pick abc123 first commit\n",
			entries: []Entry{
				{Offset: 0, Action: Pick, Ref: "abc123", Message: "first commit"},
			},
		},
		{
			name:   "only first header directive counts",
			text:   "# Rebase abc123..def456 onto 789abc\n# Rebase 111111..222222 onto 333333\n",
			header: Header{From: "abc123", To: "def456", Onto: "789abc"},
		},
		{
			name: "single letter aliases",
			text: "p abc123 one\nr bcd234 two\ne cde345 three\ns def456 four\nf ef5678 five\nb fa6789 six\nd ab789a seven\n",
			entries: []Entry{
				{Offset: 0, Action: Pick, Ref: "abc123", Message: "one"},
				{Offset: 13, Action: Reword, Ref: "bcd234", Message: "two"},
				{Offset: 26, Action: Edit, Ref: "cde345", Message: "three"},
				{Offset: 41, Action: Squash, Ref: "def456", Message: "four"},
				{Offset: 55, Action: Fixup, Ref: "ef5678", Message: "five"},
				{Offset: 69, Action: Break, Ref: "fa6789", Message: "six"},
				{Offset: 82, Action: Drop, Ref: "ab789a", Message: "seven"},
			},
		},
		{
			name: "unrecognized action maps to pick",
			text: "frobnicate abc123 keep this\n",
			entries: []Entry{
				{Offset: 0, Action: Pick, Ref: "abc123", Message: "keep this"},
			},
		},
		{
			name: "empty message permitted",
			text: "break abcd1234\n",
			entries: []Entry{
				{Offset: 0, Action: Break, Ref: "abcd1234", Message: ""},
			},
		},
		{
			name: "inert lines are skipped",
			text: "# comment\n\npick abc123 first\nexec make test\n# another comment\nsquash def456 second\n",
			entries: []Entry{
				{Offset: 11, Action: Pick, Ref: "abc123", Message: "first"},
				{Offset: 62, Action: Squash, Ref: "def456", Message: "second"},
			},
		},
		{
			name: "entry without trailing newline",
			text: "pick abc123 last",
			entries: []Entry{
				{Offset: 0, Action: Pick, Ref: "abc123", Message: "last"},
			},
		},
		{
			name: "empty text",
			text: "",
		},
		{
			name: "arbitrary text yields empty plan",
			text: "noise\nnot a todo file\n12345 is not an entry\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parse(tt.text)
			assert.Equal(t, tt.header, p.Header)
			assert.Equal(t, tt.entries, p.Entries)
		})
	}
}

func TestParseOffsetsPointAtLineStarts(t *testing.T) {
	p := Parse(sampleTodo)
	require.Len(t, p.Entries, 2)
	for _, entry := range p.Entries {
		line := sampleTodo[entry.Offset:]
		if i := strings.IndexByte(line, '\n'); i >= 0 {
			line = line[:i]
		}
		assert.Equal(t, entry.Line(), line)
	}
}

func TestParseEntryOrderMatchesText(t *testing.T) {
	text := "drop 999999 z\npick 111111 a\nfixup 555555 m\n"
	p := Parse(text)
	require.Len(t, p.Entries, 3)
	assert.True(t, p.Entries[0].Offset < p.Entries[1].Offset)
	assert.True(t, p.Entries[1].Offset < p.Entries[2].Offset)
	assert.Equal(t, []Action{Drop, Pick, Fixup}, []Action{p.Entries[0].Action, p.Entries[1].Action, p.Entries[2].Action})
}

func TestLineRoundTrip(t *testing.T) {
	lines := []string{
		"pick abc123 first commit",
		"squash def456 second commit",
		"break abcd1234",
		"reword abc123  message with leading space",
	}
	for _, line := range lines {
		p := Parse(line + "\n")
		require.Len(t, p.Entries, 1, line)
		assert.Equal(t, line, p.Entries[0].Line())
	}
}

func TestParseAction(t *testing.T) {
	assert.Equal(t, Reword, ParseAction("r"))
	assert.Equal(t, Drop, ParseAction("drop"))
	assert.Equal(t, Pick, ParseAction("anything-else"))
}

func TestFindEntry(t *testing.T) {
	p := Parse(sampleTodo)
	entry, index, ok := p.FindEntry("def456")
	require.True(t, ok)
	assert.Equal(t, 1, index)
	assert.Equal(t, Squash, entry.Action)

	_, _, ok = p.FindEntry("000000")
	assert.False(t, ok)
}

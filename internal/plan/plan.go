package plan

// Action is one of the operations an instruction-file entry can request.
type Action string

const (
	Pick   Action = "pick"
	Reword Action = "reword"
	Edit   Action = "edit"
	Squash Action = "squash"
	Fixup  Action = "fixup"
	Break  Action = "break"
	Drop   Action = "drop"
)

var actionAliases = map[string]Action{
	"p": Pick, "pick": Pick,
	"r": Reword, "reword": Reword,
	"e": Edit, "edit": Edit,
	"s": Squash, "squash": Squash,
	"f": Fixup, "fixup": Fixup,
	"b": Break, "break": Break,
	"d": Drop, "drop": Drop,
}

// ParseAction maps an action token (full word or single-letter alias) to an
// Action. Unrecognized tokens map to Pick.
func ParseAction(token string) Action {
	if action, ok := actionAliases[token]; ok {
		return action
	}
	return Pick
}

// Header is the range and destination of the rebase, taken from the single
// `# Rebase <from>..<to> onto <onto>` directive line. A new directive line
// means a new plan; a Header is never mutated.
type Header struct {
	Branch string `json:"branch"`
	From   string `json:"from"`
	To     string `json:"to"`
	Onto   string `json:"onto"`
}

// Entry is one action line of the instruction file.
type Entry struct {
	// Offset is the byte offset of the start of this entry's line in the
	// source text. It is only valid for the text the entry was parsed from.
	Offset  int    `json:"textOffset"`
	Action  Action `json:"action"`
	Ref     string `json:"ref"`
	Message string `json:"message"`
}

// Line renders the entry back into its instruction-file form.
func (e Entry) Line() string {
	if e.Message == "" {
		return string(e.Action) + " " + e.Ref
	}
	return string(e.Action) + " " + e.Ref + " " + e.Message
}

// Plan is the parsed instruction file prior to commit-metadata enrichment.
// Entries preserve the top-to-bottom order of the source text, which is the
// rebase execution order.
type Plan struct {
	Header  Header
	Entries []Entry
}

// FindEntry returns the first entry whose ref equals ref.
func (p Plan) FindEntry(ref string) (Entry, int, bool) {
	for i, entry := range p.Entries {
		if entry.Ref == ref {
			return entry, i, true
		}
	}
	return Entry{}, -1, false
}

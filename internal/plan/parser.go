package plan

import (
	"strings"
)

type lineKind int

const (
	lineOther lineKind = iota
	lineHeader
	lineEntry
)

// Parse extracts a Plan from the raw instruction-file text. It never fails:
// when the header directive is absent or unparseable the header fields stay
// empty, and lines that do not look like action entries (comments, blanks,
// trailer instructions) are ignored.
func Parse(text string) Plan {
	var p Plan
	headerSeen := false
	offset := 0
	for offset <= len(text) {
		end := strings.IndexByte(text[offset:], '\n')
		var line string
		if end < 0 {
			line = text[offset:]
			end = len(text) - offset
		} else {
			line = text[offset : offset+end]
		}
		switch kind, header, entry := classifyLine(line); kind {
		case lineHeader:
			// Only the first directive line counts.
			if !headerSeen {
				p.Header = header
				headerSeen = true
			}
		case lineEntry:
			entry.Offset = offset
			p.Entries = append(p.Entries, entry)
		}
		offset += end + 1
	}
	return p
}

func classifyLine(line string) (lineKind, Header, Entry) {
	// Tolerate a single leading space, as the original todo format does.
	trimmed := strings.TrimPrefix(line, " ")
	if rest, ok := strings.CutPrefix(trimmed, "#"); ok {
		if header, ok := parseHeader(rest); ok {
			return lineHeader, header, Entry{}
		}
		return lineOther, Header{}, Entry{}
	}
	if entry, ok := parseEntry(trimmed); ok {
		return lineEntry, Header{}, entry
	}
	return lineOther, Header{}, Entry{}
}

// parseHeader matches the remainder of a comment line against
// `Rebase <from>..<to> onto <onto>`. The `..<to>` part is optional.
func parseHeader(rest string) (Header, bool) {
	fields := strings.Fields(rest)
	if len(fields) < 4 || fields[0] != "Rebase" || fields[2] != "onto" {
		return Header{}, false
	}
	from, to, _ := strings.Cut(fields[1], "..")
	if !isRef(from) || (to != "" && !isRef(to)) || !isRef(fields[3]) {
		return Header{}, false
	}
	return Header{
		From: strings.Clone(from),
		To:   strings.Clone(to),
		Onto: strings.Clone(fields[3]),
	}, true
}

// parseEntry matches `<action-token> <ref> <message>`. The message is
// everything after the single separating space and may be empty. Captures are
// cloned so an Entry never keeps the whole document text alive through a
// substring reference.
func parseEntry(line string) (Entry, bool) {
	token, rest, ok := strings.Cut(line, " ")
	if !ok || !isWord(token) {
		return Entry{}, false
	}
	ref, message, _ := strings.Cut(rest, " ")
	if !isRef(ref) {
		return Entry{}, false
	}
	return Entry{
		Action:  ParseAction(token),
		Ref:     strings.Clone(ref),
		Message: strings.Clone(message),
	}, true
}

// isRef reports whether token looks like a short or full commit hash.
func isRef(token string) bool {
	if len(token) < 4 || len(token) > 40 {
		return false
	}
	for i := 0; i < len(token); i++ {
		c := token[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func isWord(token string) bool {
	if token == "" {
		return false
	}
	for i := 0; i < len(token); i++ {
		c := token[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') && c != '_' && c != '-' {
			return false
		}
	}
	return true
}

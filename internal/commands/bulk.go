package commands

import "strings"

// BulkInput is the parsed form of a free-text task list.
type BulkInput struct {
	Title string
	Texts []string
}

// ParseBulkInput splits text on spaces, tabs, newlines and the ideographic
// space U+3000. A first token starting with "#" or "##" is the title, marker
// removed; every other token is one task text, "#" included.
func ParseBulkInput(text string) BulkInput {
	out := BulkInput{Texts: []string{}}
	for i, tok := range strings.FieldsFunc(text, isSeparator) {
		if i == 0 && strings.HasPrefix(tok, "#") {
			name := strings.TrimPrefix(tok, "##")
			if name == tok {
				name = strings.TrimPrefix(tok, "#")
			}
			out.Title = name
			continue
		}
		out.Texts = append(out.Texts, tok)
	}
	return out
}

// ParseTaskList splits text like ParseBulkInput but has no title: every
// token is a task text.
func ParseTaskList(text string) []string {
	out := strings.FieldsFunc(text, isSeparator)
	if out == nil {
		return []string{}
	}
	return out
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f', '\u3000':
		return true
	default:
		return false
	}
}

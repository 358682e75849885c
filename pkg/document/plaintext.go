package document

import "strings"

// Plaintext extracts the searchable/word-countable text of a document.
// Decorator nodes contribute nothing, blocks join their children, and
// top-level blocks are separated by a blank line. The comma-ok result
// distinguishes "no content" from content that extracted to nothing;
// ok is false exactly when the trimmed output is empty.
//
// Extraction is deterministic: extracting twice from the same document
// yields identical output.
func Plaintext(doc *Document) (string, bool) {
	text := Walk(&doc.Root, Visitor[string]{
		Text: func(n *Node) string {
			return n.Text
		},
		Linebreak: func(_ *Node) string {
			return "\n"
		},
		Decorator: func(_ *Node) string {
			return ""
		},
		Block: func(n *Node, children []string) string {
			switch n.Type {
			case TypeRoot:
				return joinNonEmpty(children, "\n\n")
			case TypeQuote, TypeList:
				return joinNonEmpty(children, "\n")
			case TypeCode:
				// Raw code is not prose; it is excluded from search
				// text and word counts.
				return ""
			default:
				return strings.Join(children, "")
			}
		},
	})

	text = strings.TrimSpace(text)
	return text, text != ""
}

// WordCount splits on runs of whitespace and counts non-empty tokens.
// This is the canonical input to the save-wipe guard: a save whose
// incoming document counts zero words against a non-empty stored
// document is treated as suspect.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func joinNonEmpty(parts []string, sep string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

package document

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseErrorKind classifies why a raw payload failed to parse.
type ParseErrorKind string

const (
	ErrNotJSON     ParseErrorKind = "NotJson"
	ErrMissingRoot ParseErrorKind = "MissingRoot"
)

// ParseError is returned by Parse for malformed input. Callers render
// an empty document instead of propagating it to the client.
type ParseError struct {
	Kind ParseErrorKind
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("document parse failed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("document parse failed (%s)", e.Kind)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse decodes a serialized document. The only hard failures are
// syntactically invalid JSON and a payload with no root children;
// everything else is normalized in place (fail closed: malformed nodes
// degrade to nothing rather than aborting the document).
func Parse(raw string) (*Document, error) {
	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &ParseError{Kind: ErrNotJSON, Err: err}
	}
	if doc.Root.Type == "" && doc.Root.Children == nil {
		return nil, &ParseError{Kind: ErrMissingRoot}
	}
	normalize(&doc)
	return &doc, nil
}

// Serialize is the inverse of Parse. Round-trip holds for any document
// built from defined node variants.
func Serialize(doc *Document) (string, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to serialize document: %w", err)
	}
	return string(b), nil
}

// Looks reports whether a raw string plausibly holds a serialized
// document, cheap enough to probe before a full Parse.
func Looks(raw string) bool {
	return strings.HasPrefix(strings.TrimSpace(raw), `{"root":`)
}

// New returns an empty document with a well-formed root.
func New() *Document {
	return &Document{Root: Node{Type: TypeRoot, Version: 1, Children: []Node{}}}
}

// normalize repairs structural violations without dropping content:
// nodes with an empty type are removed, and stray inline nodes directly
// under the root are wrapped in paragraphs (the root may only hold
// blocks). Unknown types survive untouched; Walk treats them as
// transparent containers or no-ops.
func normalize(doc *Document) {
	if doc.Root.Type == "" {
		doc.Root.Type = TypeRoot
	}
	doc.Root.Children = pruneEmpty(doc.Root.Children)
	doc.Root.Children = wrapRootInlines(doc.Root.Children)
}

func pruneEmpty(nodes []Node) []Node {
	out := nodes[:0]
	for _, n := range nodes {
		if n.Type == "" {
			continue
		}
		n.Children = pruneEmpty(n.Children)
		out = append(out, n)
	}
	return out
}

func wrapRootInlines(nodes []Node) []Node {
	var out []Node
	var run []Node
	flush := func() {
		if len(run) > 0 {
			out = append(out, NewParagraph(run...))
			run = nil
		}
	}
	for _, n := range nodes {
		if IsInline(n.Type) {
			run = append(run, n)
			continue
		}
		flush()
		out = append(out, n)
	}
	flush()
	if out == nil {
		out = []Node{}
	}
	return out
}

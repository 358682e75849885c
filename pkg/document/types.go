package document

import (
	"encoding/json"
	"fmt"
)

// Document is the canonical tree representation of a post body.
// It is the single source of truth for rendering, plaintext extraction
// and search indexing; every consumer interprets it through Walk.
type Document struct {
	Root Node `json:"root"`
}

// Node represents any node in the content tree, discriminated by Type.
// Pointers/omitempty keep the serialized form identical to what the
// editor produces (absent fields stay absent).
type Node struct {
	Type     string `json:"type"`
	Version  int    `json:"version,omitempty"`
	Children []Node `json:"children,omitempty"`

	// Text specific
	Text   string      `json:"text,omitempty"`
	Format FormatValue `json:"format,omitzero"`
	Style  string      `json:"style,omitempty"`

	// Heading specific (h1..h4)
	Tag string `json:"tag,omitempty"`

	// List specific
	ListType string `json:"listType,omitempty"` // bullet, number
	Start    int    `json:"start,omitempty"`

	// Link specific
	URL    string `json:"url,omitempty"`
	Target string `json:"target,omitempty"`

	// Code specific (raw, unformatted)
	Code string `json:"code,omitempty"`

	// Media decorators (image / gallery / audio)
	Src       string         `json:"src,omitempty"`
	Alt       string         `json:"alt,omitempty"`
	Title     string         `json:"title,omitempty"`
	Width     int            `json:"width,omitempty"`
	Height    int            `json:"height,omitempty"`
	CardWidth string         `json:"cardWidth,omitempty"` // normal, wide, full
	MediaID   string         `json:"mediaId,omitempty"`
	Images    []GalleryImage `json:"images,omitempty"`

	// YouTube embed (an 11-character external id, not a URL)
	VideoID string `json:"videoId,omitempty"`
}

// GalleryImage is one entry of a gallery node. The same media
// indirection rule applies per image: MediaID wins over Src.
type GalleryImage struct {
	Src     string `json:"src,omitempty"`
	Alt     string `json:"alt,omitempty"`
	Title   string `json:"title,omitempty"`
	MediaID string `json:"mediaId,omitempty"`
}

// Node type discriminators.
const (
	TypeRoot      = "root"
	TypeText      = "text"
	TypeLinebreak = "linebreak"
	TypeParagraph = "paragraph"
	TypeHeading   = "heading"
	TypeList      = "list"
	TypeListItem  = "listitem"
	TypeQuote     = "quote"
	TypeCode      = "code"
	TypeLink      = "link"
	TypeImage     = "image"
	TypeGallery   = "gallery"
	TypeAudio     = "audio"
	TypeYouTube   = "youtube"
)

// Text format bitmask.
const (
	FormatBold   = 1
	FormatItalic = 2
	FormatCode   = 4
)

// CardWidth values for image nodes.
const (
	WidthNormal = "normal"
	WidthWide   = "wide"
	WidthFull   = "full"
)

// FormatValue carries the "format" field, which is a bitmask on text
// nodes and an alignment string (left/center/right/justify) on blocks.
// Both shapes share one JSON key, so marshaling sniffs which is set.
type FormatValue struct {
	Bits  int
	Align string
}

// Bitmask constructs the text-node shape.
func Bitmask(bits int) FormatValue { return FormatValue{Bits: bits} }

// Align constructs the block-alignment shape.
func Align(align string) FormatValue { return FormatValue{Align: align} }

func (f FormatValue) IsZero() bool { return f.Bits == 0 && f.Align == "" }

func (f FormatValue) MarshalJSON() ([]byte, error) {
	if f.Align != "" {
		return json.Marshal(f.Align)
	}
	return json.Marshal(f.Bits)
}

func (f *FormatValue) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*f = FormatValue{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FormatValue{Align: s}
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("format must be a number or string: %w", err)
	}
	*f = FormatValue{Bits: int(n)}
	return nil
}

// IsDecorator reports whether the type is a self-contained media unit
// rendered by an opaque component.
func IsDecorator(nodeType string) bool {
	switch nodeType {
	case TypeImage, TypeGallery, TypeAudio, TypeYouTube:
		return true
	}
	return false
}

// IsInline reports whether the type flows within a block.
func IsInline(nodeType string) bool {
	switch nodeType {
	case TypeText, TypeLinebreak, TypeLink:
		return true
	}
	return false
}

// isKnownBlock covers the container/block types Walk dispatches to the
// block handler. Unknown types with children are treated the same way.
func isKnownBlock(nodeType string) bool {
	switch nodeType {
	case TypeRoot, TypeParagraph, TypeHeading, TypeList, TypeListItem,
		TypeQuote, TypeCode, TypeLink:
		return true
	}
	return false
}

// NewTextNode is a convenience constructor used by the importers.
func NewTextNode(text string, formatBits int) Node {
	return Node{Type: TypeText, Version: 1, Text: text, Format: Bitmask(formatBits)}
}

// NewParagraph wraps inline children in a paragraph block.
func NewParagraph(children ...Node) Node {
	return Node{Type: TypeParagraph, Version: 1, Children: children}
}

package legacy

import (
	"encoding/json"
	"fmt"
	"strings"

	"blog-cms-be/pkg/document"
)

// The legacy editor's structured format: an ordered list of sections,
// each either inline markup or a reference into a shared card table.
type cardGraph struct {
	Version  string        `json:"version,omitempty"`
	Sections []cardSection `json:"sections"`
	Cards    []card        `json:"cards,omitempty"`
}

type cardSection struct {
	Kind    string       `json:"kind"`
	Tag     string       `json:"tag,omitempty"`
	Markers []cardMarker `json:"markers,omitempty"`
	Card    int          `json:"card"`
}

type cardMarker struct {
	Text   string `json:"text,omitempty"`
	Atom   string `json:"atom,omitempty"`
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
	Code   bool   `json:"code,omitempty"`
}

type card struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

type imageCardPayload struct {
	Src       string `json:"src"`
	Alt       string `json:"alt,omitempty"`
	Title     string `json:"title,omitempty"`
	CardWidth string `json:"cardWidth,omitempty"`
}

type galleryCardPayload struct {
	Images []imageCardPayload `json:"images"`
}

type htmlCardPayload struct {
	HTML string `json:"html"`
}

// ImportCardGraph converts a serialized legacy card graph into document
// blocks. Malformed sections and unknown card names are skipped so a
// single bad section cannot sink an otherwise importable post; only an
// unparseable envelope is an error.
func ImportCardGraph(raw string) ([]document.Node, error) {
	var g cardGraph
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		return nil, fmt.Errorf("failed to decode card graph: %w", err)
	}

	var blocks []document.Node
	for _, sec := range g.Sections {
		switch sec.Kind {
		case "markup":
			if b, ok := markupBlock(sec); ok {
				blocks = append(blocks, b)
			}
		case "card":
			if sec.Card < 0 || sec.Card >= len(g.Cards) {
				continue
			}
			blocks = append(blocks, cardBlocks(g.Cards[sec.Card])...)
		}
	}
	return blocks, nil
}

func markupBlock(sec cardSection) (document.Node, bool) {
	children := markerChildren(sec.Markers)
	if len(children) == 0 {
		return document.Node{}, false
	}
	switch sec.Tag {
	case "h1", "h2", "h3", "h4":
		return document.Node{
			Type:     document.TypeHeading,
			Version:  1,
			Tag:      sec.Tag,
			Children: children,
		}, true
	case "blockquote":
		return document.Node{
			Type:     document.TypeQuote,
			Version:  1,
			Children: []document.Node{document.NewParagraph(children...)},
		}, true
	case "pre":
		var sb strings.Builder
		for _, m := range sec.Markers {
			if m.Atom == "soft-return" {
				sb.WriteByte('\n')
				continue
			}
			sb.WriteString(m.Text)
		}
		return document.Node{
			Type:    document.TypeCode,
			Version: 1,
			Code:    sb.String(),
		}, true
	default:
		return document.NewParagraph(children...), true
	}
}

func markerChildren(markers []cardMarker) []document.Node {
	var children []document.Node
	for _, m := range markers {
		if m.Atom == "soft-return" {
			children = append(children, document.Node{Type: document.TypeLinebreak, Version: 1})
			continue
		}
		if m.Text == "" {
			continue
		}
		bits := 0
		if m.Bold {
			bits |= document.FormatBold
		}
		if m.Italic {
			bits |= document.FormatItalic
		}
		if m.Code {
			bits |= document.FormatCode
		}
		children = append(children, document.NewTextNode(m.Text, bits))
	}
	return children
}

func cardBlocks(c card) []document.Node {
	switch c.Name {
	case "image":
		var p imageCardPayload
		if json.Unmarshal(c.Payload, &p) != nil || p.Src == "" {
			return nil
		}
		return []document.Node{{
			Type:      document.TypeImage,
			Version:   1,
			Src:       p.Src,
			Alt:       p.Alt,
			Title:     p.Title,
			CardWidth: p.CardWidth,
		}}
	case "gallery":
		var p galleryCardPayload
		if json.Unmarshal(c.Payload, &p) != nil || len(p.Images) == 0 {
			return nil
		}
		var images []document.GalleryImage
		for _, img := range p.Images {
			if img.Src == "" {
				continue
			}
			images = append(images, document.GalleryImage{
				Src:   img.Src,
				Alt:   img.Alt,
				Title: img.Title,
			})
		}
		if len(images) == 0 {
			return nil
		}
		return []document.Node{{
			Type:    document.TypeGallery,
			Version: 1,
			Images:  images,
		}}
	case "html":
		var p htmlCardPayload
		if json.Unmarshal(c.Payload, &p) != nil || p.HTML == "" {
			return nil
		}
		return ImportHTML(p.HTML)
	default:
		return nil
	}
}

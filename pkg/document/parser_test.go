package document

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKind ParseErrorKind
	}{
		{"not json", "<p>hello</p>", ErrNotJSON},
		{"empty string", "", ErrNotJSON},
		{"json without root", `{"foo": 1}`, ErrMissingRoot},
		{"root without children", `{"root": {}}`, ErrMissingRoot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if perr.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", perr.Kind, tt.wantKind)
			}
		})
	}
}

// A typed root with no children key is what Serialize emits for an
// empty document (children is omitempty), so it must round-trip back
// through Parse as the empty document.
func TestParseTypedRootWithoutChildren(t *testing.T) {
	empty, err := Serialize(New())
	if err != nil {
		t.Fatal(err)
	}

	for _, raw := range []string{`{"root":{"type":"root"}}`, empty} {
		doc, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", raw, err)
		}
		if len(doc.Root.Children) != 0 {
			t.Errorf("Parse(%q) root children = %d, want 0", raw, len(doc.Root.Children))
		}
	}
}

func TestParseValidDocument(t *testing.T) {
	raw := `{"root":{"type":"root","version":1,"children":[
		{"type":"paragraph","version":1,"children":[
			{"type":"text","version":1,"text":"Hello","format":1}
		]}
	]}}`

	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(doc.Root.Children) != 1 {
		t.Fatalf("root children = %d, want 1", len(doc.Root.Children))
	}
	text := doc.Root.Children[0].Children[0]
	if text.Text != "Hello" || text.Format.Bits != FormatBold {
		t.Errorf("unexpected text node: %+v", text)
	}
}

func TestParseFormatVariants(t *testing.T) {
	// The same JSON key carries a bitmask on text nodes and an
	// alignment string on paragraphs.
	raw := `{"root":{"type":"root","children":[
		{"type":"paragraph","version":1,"format":"center","children":[
			{"type":"text","version":1,"text":"hi","format":3}
		]}
	]}}`

	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	p := doc.Root.Children[0]
	if p.Format.Align != "center" {
		t.Errorf("paragraph align = %q, want center", p.Format.Align)
	}
	if p.Children[0].Format.Bits != FormatBold|FormatItalic {
		t.Errorf("text format = %d, want %d", p.Children[0].Format.Bits, FormatBold|FormatItalic)
	}
}

func TestRoundTrip(t *testing.T) {
	doc := &Document{Root: Node{Type: TypeRoot, Version: 1, Children: []Node{
		{Type: TypeHeading, Version: 1, Tag: "h2", Children: []Node{
			NewTextNode("Title", 0),
		}},
		NewParagraph(
			NewTextNode("Hello ", 0),
			NewTextNode("world", FormatBold),
			Node{Type: TypeLinebreak, Version: 1},
			NewTextNode("again", 0),
		),
		{Type: TypeList, Version: 1, ListType: "number", Start: 1, Children: []Node{
			{Type: TypeListItem, Version: 1, Children: []Node{NewTextNode("one", 0)}},
			{Type: TypeListItem, Version: 1, Children: []Node{NewTextNode("two", FormatItalic)}},
		}},
		{Type: TypeQuote, Version: 1, Children: []Node{
			NewParagraph(NewTextNode("quoted", 0)),
		}},
		{Type: TypeCode, Version: 1, Code: "x := 1\ny := 2"},
		{Type: TypeImage, Version: 1, Src: "https://cdn.example.com/a.jpg", Alt: "a", CardWidth: WidthWide, MediaID: "m-1"},
		{Type: TypeGallery, Version: 1, Images: []GalleryImage{
			{Src: "one.jpg", MediaID: "m-2"},
			{Src: "two.jpg", Alt: "second"},
		}},
		{Type: TypeAudio, Version: 1, MediaID: "m-3", Title: "episode"},
		{Type: TypeYouTube, Version: 1, VideoID: "abc12345678"},
	}}}

	raw, err := Serialize(doc)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	got, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !reflect.DeepEqual(doc, got) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, doc)
	}
}

func TestNormalizeWrapsRootInlines(t *testing.T) {
	raw := `{"root":{"type":"root","children":[
		{"type":"text","version":1,"text":"stray"},
		{"type":"paragraph","version":1,"children":[{"type":"text","version":1,"text":"ok"}]}
	]}}`

	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(doc.Root.Children) != 2 {
		t.Fatalf("root children = %d, want 2", len(doc.Root.Children))
	}
	if doc.Root.Children[0].Type != TypeParagraph {
		t.Errorf("stray inline was not wrapped, got %s", doc.Root.Children[0].Type)
	}
}

func TestNormalizeDropsTypelessNodes(t *testing.T) {
	raw := `{"root":{"type":"root","children":[
		{"version":1},
		{"type":"paragraph","version":1,"children":[{"version":1},{"type":"text","version":1,"text":"kept"}]}
	]}}`

	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(doc.Root.Children) != 1 {
		t.Fatalf("root children = %d, want 1", len(doc.Root.Children))
	}
	if len(doc.Root.Children[0].Children) != 1 {
		t.Errorf("typeless child survived: %+v", doc.Root.Children[0].Children)
	}
}

func TestLooks(t *testing.T) {
	if !Looks(`  {"root":{"children":[]}}`) {
		t.Error("expected serialized document to be recognized")
	}
	if Looks("plain old text") {
		t.Error("plain text misrecognized as a document")
	}
}

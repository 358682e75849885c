package document

import "testing"

func docFromBlocks(blocks ...Node) *Document {
	return &Document{Root: Node{Type: TypeRoot, Version: 1, Children: blocks}}
}

func TestPlaintextExtraction(t *testing.T) {
	doc := docFromBlocks(
		NewParagraph(NewTextNode("Hello ", 0), NewTextNode("world", FormatBold)),
		Node{Type: TypeImage, Version: 1, MediaID: "m-1"},
		NewParagraph(NewTextNode("second block", 0)),
	)

	text, ok := Plaintext(doc)
	if !ok {
		t.Fatal("expected content")
	}
	want := "Hello world\n\nsecond block"
	if text != want {
		t.Errorf("Plaintext = %q, want %q", text, want)
	}
}

func TestPlaintextAbsentWhenOnlyDecorators(t *testing.T) {
	doc := docFromBlocks(
		Node{Type: TypeImage, Version: 1, Src: "a.jpg"},
		Node{Type: TypeGallery, Version: 1, Images: []GalleryImage{{Src: "b.jpg"}}},
		Node{Type: TypeYouTube, Version: 1, VideoID: "abc12345678"},
	)

	text, ok := Plaintext(doc)
	if ok {
		t.Errorf("expected absent result, got %q", text)
	}
	if text != "" {
		t.Errorf("absent result should be empty, got %q", text)
	}
}

func TestPlaintextIdempotent(t *testing.T) {
	doc := docFromBlocks(
		NewParagraph(NewTextNode("alpha", 0), Node{Type: TypeLinebreak, Version: 1}, NewTextNode("beta", 0)),
		Node{Type: TypeQuote, Version: 1, Children: []Node{
			NewParagraph(NewTextNode("first", 0)),
			NewParagraph(NewTextNode("second", 0)),
		}},
	)

	first, _ := Plaintext(doc)
	second, _ := Plaintext(doc)
	if first != second {
		t.Errorf("extraction is not deterministic: %q vs %q", first, second)
	}
}

func TestWordCountInvariant(t *testing.T) {
	tests := []struct {
		name string
		doc  *Document
		want int
	}{
		{
			"no text at all",
			docFromBlocks(Node{Type: TypeImage, Version: 1, Src: "x.jpg"}),
			0,
		},
		{
			"whitespace only text",
			docFromBlocks(NewParagraph(NewTextNode("   \n\t ", 0))),
			0,
		},
		{
			"code is not prose",
			docFromBlocks(Node{Type: TypeCode, Version: 1, Code: "func main() {}"}),
			0,
		},
		{
			"counts tokens across blocks",
			docFromBlocks(
				NewParagraph(NewTextNode("one two", 0)),
				NewParagraph(NewTextNode("  three  ", 0)),
			),
			3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, _ := Plaintext(tt.doc)
			if got := WordCount(text); got != tt.want {
				t.Errorf("WordCount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPlaintextUnknownNodes(t *testing.T) {
	// Unknown containers are transparent; unknown leaves extract nothing.
	doc := docFromBlocks(
		Node{Type: "callout", Version: 1, Children: []Node{
			NewParagraph(NewTextNode("inside unknown", 0)),
		}},
		Node{Type: "horizontalrule", Version: 1},
	)

	text, ok := Plaintext(doc)
	if !ok || text != "inside unknown" {
		t.Errorf("Plaintext = %q (ok=%v), want %q", text, ok, "inside unknown")
	}
}

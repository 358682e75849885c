package document

import (
	"strings"
	"testing"
)

func TestRenderHTMLEscapesText(t *testing.T) {
	doc := docFromBlocks(
		NewParagraph(NewTextNode(`<script>alert("x")</script> & more`, 0)),
	)

	out := RenderHTML(doc, nil)
	if strings.Contains(out, "<script>") {
		t.Fatalf("unescaped markup leaked into output: %s", out)
	}
	for _, want := range []string{"&lt;script&gt;", "&amp; more", "&#34;x&#34;"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestRenderHTMLFormatting(t *testing.T) {
	doc := docFromBlocks(NewParagraph(
		NewTextNode("plain ", 0),
		NewTextNode("bold", FormatBold),
		NewTextNode("both", FormatBold|FormatItalic),
		NewTextNode("mono", FormatCode),
	))

	out := RenderHTML(doc, nil)
	for _, want := range []string{
		"<strong>bold</strong>",
		"<strong><em>both</em></strong>",
		"<code>mono</code>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestRenderHTMLStyleAllowlist(t *testing.T) {
	doc := docFromBlocks(NewParagraph(
		Node{Type: TypeText, Version: 1, Text: "tinted",
			Style: "color: #F97316; position: fixed; background-color: #BFDBFE"},
	))

	out := RenderHTML(doc, nil)
	if !strings.Contains(out, "color: #F97316") || !strings.Contains(out, "background-color: #BFDBFE") {
		t.Errorf("allowlisted styles dropped: %s", out)
	}
	if strings.Contains(out, "position") {
		t.Errorf("non-allowlisted style survived: %s", out)
	}
}

func TestRenderHTMLParagraphSplitting(t *testing.T) {
	// [TextRun, ImageNode, TextRun] renders as three sibling blocks.
	doc := docFromBlocks(Node{Type: TypeParagraph, Version: 1, Children: []Node{
		NewTextNode("before", 0),
		{Type: TypeImage, Version: 1, Src: "pic.jpg"},
		NewTextNode("after", 0),
	}})

	out := RenderHTML(doc, nil)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 sibling blocks, got %d: %s", len(lines), out)
	}
	if lines[0] != "<p>before</p>" {
		t.Errorf("first block = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "<figure") || !strings.Contains(lines[1], "pic.jpg") {
		t.Errorf("second block should be the image figure, got %q", lines[1])
	}
	if lines[2] != "<p>after</p>" {
		t.Errorf("third block = %q", lines[2])
	}
	if strings.Contains(lines[0]+lines[2], "<figure") {
		t.Error("block element nested inside a paragraph")
	}
}

func TestRenderHTMLMediaIndirection(t *testing.T) {
	doc := docFromBlocks(Node{
		Type: TypeImage, Version: 1,
		Src:     "https://old.example.com/stale.jpg",
		MediaID: "m-42",
	})

	resolved := RenderHTML(doc, func(id string) (string, bool) {
		if id == "m-42" {
			return "https://cdn.example.com/signed.jpg?sig=abc", true
		}
		return "", false
	})
	if !strings.Contains(resolved, "signed.jpg") || strings.Contains(resolved, "stale.jpg") {
		t.Errorf("resolved mediaId must win over stale src: %s", resolved)
	}

	fallback := RenderHTML(doc, func(string) (string, bool) { return "", false })
	if !strings.Contains(fallback, "stale.jpg") {
		t.Errorf("failed resolution should fall back to src: %s", fallback)
	}
}

func TestRenderHTMLUnresolvableMediaPlaceholder(t *testing.T) {
	doc := docFromBlocks(Node{Type: TypeImage, Version: 1, MediaID: "missing"})

	out := RenderHTML(doc, func(string) (string, bool) { return "", false })
	if !strings.Contains(out, "media-unavailable") {
		t.Errorf("expected placeholder for unresolvable media: %s", out)
	}
}

func TestRenderHTMLBlocks(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want []string
	}{
		{
			"heading",
			Node{Type: TypeHeading, Version: 1, Tag: "h3", Children: []Node{NewTextNode("Title", 0)}},
			[]string{"<h3>Title</h3>"},
		},
		{
			"numbered list",
			Node{Type: TypeList, Version: 1, ListType: "number", Children: []Node{
				{Type: TypeListItem, Version: 1, Children: []Node{NewTextNode("first", 0)}},
			}},
			[]string{"<ol>", "<li>first</li>", "</ol>"},
		},
		{
			"quote",
			Node{Type: TypeQuote, Version: 1, Children: []Node{NewParagraph(NewTextNode("q", 0))}},
			[]string{"<blockquote>", "<p>q</p>", "</blockquote>"},
		},
		{
			"code keeps raw text escaped",
			Node{Type: TypeCode, Version: 1, Code: "if a < b {"},
			[]string{"<pre><code>if a &lt; b {</code></pre>"},
		},
		{
			"youtube embed",
			Node{Type: TypeYouTube, Version: 1, VideoID: "abc12345678"},
			[]string{"youtube.com/embed/abc12345678"},
		},
		{
			"aligned paragraph",
			Node{Type: TypeParagraph, Version: 1, Format: Align("center"),
				Children: []Node{NewTextNode("centered", 0)}},
			[]string{`<p style="text-align: center;">centered</p>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderHTML(docFromBlocks(tt.node), nil)
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestRenderHTMLLink(t *testing.T) {
	doc := docFromBlocks(NewParagraph(Node{
		Type: TypeLink, Version: 1, URL: `https://example.com/?a=1&b="2"`, Target: "_blank",
		Children: []Node{NewTextNode("click", 0)},
	}))

	out := RenderHTML(doc, nil)
	if !strings.Contains(out, `href="https://example.com/?a=1&amp;b=&#34;2&#34;"`) {
		t.Errorf("href not escaped: %s", out)
	}
	if !strings.Contains(out, `target="_blank"`) || !strings.Contains(out, `rel="noopener noreferrer"`) {
		t.Errorf("target handling wrong: %s", out)
	}
	if !strings.Contains(out, ">click</a>") {
		t.Errorf("link children missing: %s", out)
	}
}

func TestRenderHTMLUnknownNodes(t *testing.T) {
	doc := docFromBlocks(
		Node{Type: "callout", Version: 1, Children: []Node{
			NewParagraph(NewTextNode("still visible", 0)),
		}},
		Node{Type: "widget", Version: 1},
	)

	out := RenderHTML(doc, nil)
	if !strings.Contains(out, "still visible") {
		t.Errorf("unknown container should be transparent: %s", out)
	}
	if strings.Contains(out, "widget") {
		t.Errorf("unknown leaf should render nothing: %s", out)
	}
}

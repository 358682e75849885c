package document

import (
	"fmt"
	"html"
	"strings"
)

// ResolveFunc maps a media id to a usable URL. ok=false means the id
// could not be resolved and the renderer must fall back.
type ResolveFunc func(mediaID string) (string, bool)

// RenderHTML renders a document to static HTML (previews, feeds). It is
// a pure function with no DOM dependency; media ids are resolved through
// the supplied func, which may be nil when no resolver is available.
//
// All text content and attribute values are escaped. Stored text
// originates from rich-text input and may contain literal angle
// brackets; trusting it verbatim would be an injection hole.
func RenderHTML(doc *Document, resolve ResolveFunc) string {
	out := Walk(&doc.Root, htmlVisitor(resolve))
	return out.s
}

type htmlChunk struct {
	s     string
	block bool
}

func htmlVisitor(resolve ResolveFunc) Visitor[htmlChunk] {
	return Visitor[htmlChunk]{
		Text:      renderTextHTML,
		Linebreak: func(_ *Node) htmlChunk { return htmlChunk{s: "<br>"} },
		Decorator: func(n *Node) htmlChunk { return renderDecoratorHTML(n, resolve) },
		Block: func(n *Node, children []htmlChunk) htmlChunk {
			return renderBlockHTML(n, children)
		},
	}
}

func renderTextHTML(n *Node) htmlChunk {
	var sb strings.Builder

	styleAttr := ParseStyle(n.Style).Relevant()
	if styleAttr != "" {
		sb.WriteString(`<span style="` + html.EscapeString(styleAttr) + `">`)
	}

	bits := n.Format.Bits
	if bits&FormatCode != 0 {
		sb.WriteString("<code>")
	}
	if bits&FormatBold != 0 {
		sb.WriteString("<strong>")
	}
	if bits&FormatItalic != 0 {
		sb.WriteString("<em>")
	}

	sb.WriteString(html.EscapeString(n.Text))

	if bits&FormatItalic != 0 {
		sb.WriteString("</em>")
	}
	if bits&FormatBold != 0 {
		sb.WriteString("</strong>")
	}
	if bits&FormatCode != 0 {
		sb.WriteString("</code>")
	}
	if styleAttr != "" {
		sb.WriteString("</span>")
	}

	return htmlChunk{s: sb.String()}
}

func renderBlockHTML(n *Node, children []htmlChunk) htmlChunk {
	switch n.Type {
	case TypeRoot:
		return htmlChunk{s: joinChunks(children, "\n"), block: true}

	case TypeParagraph:
		parts := splitRuns(children, func(c htmlChunk) bool { return c.block })
		if len(parts) == 0 {
			return htmlChunk{s: "<p><br></p>", block: true}
		}
		var rendered []string
		for _, part := range parts {
			if part.IsRun {
				rendered = append(rendered, "<p"+alignAttr(n)+">"+joinChunks(part.Inline, "")+"</p>")
			} else {
				rendered = append(rendered, part.Block.s)
			}
		}
		return htmlChunk{s: strings.Join(rendered, "\n"), block: true}

	case TypeHeading:
		tag := headingTag(n.Tag)
		return htmlChunk{s: "<" + tag + ">" + joinChunks(children, "") + "</" + tag + ">", block: true}

	case TypeList:
		tag := "ul"
		if n.ListType == "number" {
			tag = "ol"
		}
		return htmlChunk{s: "<" + tag + ">\n" + joinChunks(children, "\n") + "\n</" + tag + ">", block: true}

	case TypeListItem:
		return htmlChunk{s: "<li>" + joinChunks(children, "") + "</li>", block: true}

	case TypeQuote:
		return htmlChunk{s: "<blockquote>\n" + joinChunks(children, "\n") + "\n</blockquote>", block: true}

	case TypeCode:
		return htmlChunk{s: "<pre><code>" + html.EscapeString(n.Code) + "</code></pre>", block: true}

	case TypeLink:
		var sb strings.Builder
		sb.WriteString(`<a href="` + html.EscapeString(n.URL) + `"`)
		if n.Target != "" {
			sb.WriteString(` target="` + html.EscapeString(n.Target) + `" rel="noopener noreferrer"`)
		}
		sb.WriteString(">" + joinChunks(children, "") + "</a>")
		return htmlChunk{s: sb.String()}

	default:
		// Unknown container: unwrap to its children.
		return htmlChunk{s: joinChunks(children, "\n"), block: true}
	}
}

func renderDecoratorHTML(n *Node, resolve ResolveFunc) htmlChunk {
	switch n.Type {
	case TypeImage:
		url, ok := mediaURL(n.MediaID, n.Src, resolve)
		if !ok {
			return htmlChunk{s: unavailableHTML(), block: true}
		}
		var sb strings.Builder
		sb.WriteString(`<figure class="` + cardClass("image-card", n.CardWidth) + `">`)
		sb.WriteString(`<img src="` + html.EscapeString(url) + `"`)
		if n.Alt != "" {
			sb.WriteString(` alt="` + html.EscapeString(n.Alt) + `"`)
		}
		if n.Title != "" {
			sb.WriteString(` title="` + html.EscapeString(n.Title) + `"`)
		}
		if n.Width > 0 && n.Height > 0 {
			sb.WriteString(fmt.Sprintf(` width="%d" height="%d"`, n.Width, n.Height))
		}
		sb.WriteString("></figure>")
		return htmlChunk{s: sb.String(), block: true}

	case TypeGallery:
		var sb strings.Builder
		sb.WriteString(`<figure class="gallery-card">`)
		for _, img := range n.Images {
			url, ok := mediaURL(img.MediaID, img.Src, resolve)
			if !ok {
				sb.WriteString(unavailableHTML())
				continue
			}
			sb.WriteString(`<img src="` + html.EscapeString(url) + `"`)
			if img.Alt != "" {
				sb.WriteString(` alt="` + html.EscapeString(img.Alt) + `"`)
			}
			sb.WriteString(">")
		}
		sb.WriteString("</figure>")
		return htmlChunk{s: sb.String(), block: true}

	case TypeAudio:
		url, ok := mediaURL(n.MediaID, n.Src, resolve)
		if !ok {
			return htmlChunk{s: unavailableHTML(), block: true}
		}
		var sb strings.Builder
		sb.WriteString(`<audio controls src="` + html.EscapeString(url) + `"`)
		if n.Title != "" {
			sb.WriteString(` title="` + html.EscapeString(n.Title) + `"`)
		}
		sb.WriteString("></audio>")
		return htmlChunk{s: sb.String(), block: true}

	case TypeYouTube:
		src := "https://www.youtube.com/embed/" + html.EscapeString(n.VideoID)
		return htmlChunk{
			s:     `<figure class="embed-card"><iframe src="` + src + `" frameborder="0" allowfullscreen></iframe></figure>`,
			block: true,
		}
	}
	return htmlChunk{}
}

// mediaURL applies the media indirection rule: a present mediaId is
// authoritative when it resolves; src is only a stale fallback.
func mediaURL(mediaID, src string, resolve ResolveFunc) (string, bool) {
	if mediaID != "" && resolve != nil {
		if url, ok := resolve(mediaID); ok {
			return url, true
		}
	}
	if src != "" {
		return src, true
	}
	return "", false
}

func unavailableHTML() string {
	return `<div class="media-unavailable">Media unavailable</div>`
}

func cardClass(base, width string) string {
	switch width {
	case WidthWide, WidthFull:
		return base + " " + base + "--" + width
	}
	return base
}

func headingTag(tag string) string {
	switch tag {
	case "h1", "h2", "h3", "h4":
		return tag
	}
	return "h2"
}

func alignAttr(n *Node) string {
	align := n.Format.Align
	switch align {
	case "center", "right", "justify":
		return ` style="text-align: ` + align + `;"`
	}
	return ""
}

func joinChunks(chunks []htmlChunk, sep string) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if c.s == "" {
			continue
		}
		parts = append(parts, c.s)
	}
	return strings.Join(parts, sep)
}

package legacy

import (
	"strings"

	"blog-cms-be/pkg/document"
)

// ImportHTML converts legacy raw HTML into document blocks. Only the
// tags the legacy editor could actually emit are honored; anything else
// is unwrapped with its text kept, so unknown markup degrades to prose
// instead of vanishing.
func ImportHTML(raw string) []document.Node {
	s := &htmlScanner{src: raw}
	s.scan()
	return s.blocks
}

// entityTable covers the entities the legacy exporter wrote. Anything
// outside the table passes through literally.
var entityTable = map[string]string{
	"amp":    "&",
	"lt":     "<",
	"gt":     ">",
	"quot":   `"`,
	"apos":   "'",
	"#39":    "'",
	"#34":    `"`,
	"nbsp":   " ",
	"hellip": "…",
	"mdash":  "—",
	"ndash":  "–",
	"lsquo":  "‘",
	"rsquo":  "’",
	"ldquo":  "“",
	"rdquo":  "”",
}

func decodeEntities(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '&' {
			b.WriteByte(s[i])
			i++
			continue
		}
		end := strings.IndexByte(s[i:], ';')
		if end < 0 || end > 10 {
			b.WriteByte(s[i])
			i++
			continue
		}
		if repl, ok := entityTable[s[i+1:i+end]]; ok {
			b.WriteString(repl)
			i += end + 1
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

type linkFrame struct {
	url      string
	target   string
	children []document.Node
}

type htmlScanner struct {
	src string
	pos int

	blocks []document.Node

	inPara bool
	para   []document.Node

	text strings.Builder

	bold      int
	italic    int
	underline int
	colors    []string
	spans     []string
	divAligns []string
	paraAlign string

	links []linkFrame
}

func (s *htmlScanner) scan() {
	for s.pos < len(s.src) {
		lt := strings.IndexByte(s.src[s.pos:], '<')
		if lt < 0 {
			s.text.WriteString(s.src[s.pos:])
			break
		}
		s.text.WriteString(s.src[s.pos : s.pos+lt])
		s.pos += lt
		s.handleTag()
	}
	s.flushText()
	s.closeLinks()
	s.flushParagraph()
}

func (s *htmlScanner) handleTag() {
	if strings.HasPrefix(s.src[s.pos:], "<!--") {
		end := strings.Index(s.src[s.pos:], "-->")
		if end < 0 {
			s.pos = len(s.src)
			return
		}
		s.pos += end + 3
		return
	}
	gt := strings.IndexByte(s.src[s.pos:], '>')
	if gt < 0 {
		// Unterminated tag; keep it as text.
		s.text.WriteString(s.src[s.pos:])
		s.pos = len(s.src)
		return
	}
	inner := s.src[s.pos+1 : s.pos+gt]
	s.pos += gt + 1

	closing := strings.HasPrefix(inner, "/")
	inner = strings.TrimPrefix(inner, "/")
	inner = strings.TrimSuffix(strings.TrimSpace(inner), "/")

	name, attrs := splitTag(inner)
	if name == "" || strings.HasPrefix(name, "!") {
		return
	}
	if closing {
		s.closeTag(name)
	} else {
		s.openTag(name, attrs)
	}
}

func splitTag(inner string) (string, string) {
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			return strings.ToLower(inner[:i]), inner[i+1:]
		}
	}
	return strings.ToLower(inner), ""
}

// attrValue does just enough attribute parsing for the legacy export:
// quoted values, single or double.
func attrValue(attrs, name string) string {
	lower := strings.ToLower(attrs)
	i := 0
	for {
		j := strings.Index(lower[i:], name)
		if j < 0 {
			return ""
		}
		i += j
		// Must be a word boundary followed by '='.
		if i > 0 {
			prev := lower[i-1]
			if prev != ' ' && prev != '\t' && prev != '\n' && prev != '"' && prev != '\'' {
				i += len(name)
				continue
			}
		}
		rest := strings.TrimLeft(attrs[i+len(name):], " \t\n")
		if !strings.HasPrefix(rest, "=") {
			i += len(name)
			continue
		}
		rest = strings.TrimLeft(rest[1:], " \t\n")
		if rest == "" {
			return ""
		}
		quote := rest[0]
		if quote == '"' || quote == '\'' {
			end := strings.IndexByte(rest[1:], quote)
			if end < 0 {
				return ""
			}
			return decodeEntities(rest[1 : 1+end])
		}
		end := strings.IndexAny(rest, " \t\n")
		if end < 0 {
			return rest
		}
		return rest[:end]
	}
}

func (s *htmlScanner) openTag(name, attrs string) {
	switch name {
	case "p":
		s.flushText()
		s.closeLinks()
		s.flushParagraph()
		s.inPara = true
		s.paraAlign = strings.ToLower(attrValue(attrs, "align"))

	case "br":
		s.flushText()
		s.appendInline(document.Node{Type: document.TypeLinebreak, Version: 1})

	case "img":
		src := attrValue(attrs, "src")
		if src == "" {
			return
		}
		s.flushText()
		wasPara := s.inPara
		align := s.paraAlign
		s.closeLinks()
		s.flushParagraph()
		img := document.Node{
			Type:    document.TypeImage,
			Version: 1,
			Src:     src,
			Alt:     attrValue(attrs, "alt"),
			Title:   attrValue(attrs, "title"),
		}
		s.blocks = append(s.blocks, img)
		if wasPara {
			s.inPara = true
			s.paraAlign = align
		}

	case "a":
		s.flushText()
		s.links = append(s.links, linkFrame{
			url:    attrValue(attrs, "href"),
			target: attrValue(attrs, "target"),
		})

	case "strong", "b":
		s.flushText()
		s.bold++
	case "em", "i":
		s.flushText()
		s.italic++
	case "u":
		s.flushText()
		s.underline++

	case "span":
		s.flushText()
		s.spans = append(s.spans, document.ParseStyle(attrValue(attrs, "style")).Relevant())
	case "font":
		s.flushText()
		s.colors = append(s.colors, attrValue(attrs, "color"))

	case "div":
		s.flushText()
		s.closeLinks()
		s.flushParagraph()
		s.divAligns = append(s.divAligns, strings.ToLower(attrValue(attrs, "align")))

	default:
		// Unknown tag: unwrap, keep its text.
	}
}

func (s *htmlScanner) closeTag(name string) {
	switch name {
	case "p", "div":
		s.flushText()
		s.closeLinks()
		s.flushParagraph()
		if name == "div" && len(s.divAligns) > 0 {
			s.divAligns = s.divAligns[:len(s.divAligns)-1]
		}
	case "strong", "b":
		s.flushText()
		if s.bold > 0 {
			s.bold--
		}
	case "em", "i":
		s.flushText()
		if s.italic > 0 {
			s.italic--
		}
	case "u":
		s.flushText()
		if s.underline > 0 {
			s.underline--
		}
	case "span":
		s.flushText()
		if len(s.spans) > 0 {
			s.spans = s.spans[:len(s.spans)-1]
		}
	case "font":
		s.flushText()
		if len(s.colors) > 0 {
			s.colors = s.colors[:len(s.colors)-1]
		}
	case "a":
		s.flushText()
		s.closeLink()
	}
}

func (s *htmlScanner) flushText() {
	if s.text.Len() == 0 {
		return
	}
	raw := s.text.String()
	s.text.Reset()
	text := decodeEntities(raw)
	// Whitespace between blocks is formatting, not content.
	if !s.inPara && len(s.links) == 0 && strings.TrimSpace(text) == "" {
		return
	}
	node := document.NewTextNode(text, s.formatBits())
	node.Style = s.currentStyle()
	s.appendInline(node)
}

func (s *htmlScanner) formatBits() int {
	bits := 0
	if s.bold > 0 {
		bits |= document.FormatBold
	}
	if s.italic > 0 {
		bits |= document.FormatItalic
	}
	return bits
}

func (s *htmlScanner) currentStyle() string {
	var parts []string
	if s.underline > 0 {
		parts = append(parts, "text-decoration: underline")
	}
	if n := len(s.colors); n > 0 && s.colors[n-1] != "" {
		parts = append(parts, "color: "+s.colors[n-1])
	}
	if n := len(s.spans); n > 0 && s.spans[n-1] != "" {
		parts = append(parts, s.spans[n-1])
	}
	return strings.Join(parts, "; ")
}

func (s *htmlScanner) appendInline(n document.Node) {
	if len(s.links) > 0 {
		top := &s.links[len(s.links)-1]
		top.children = append(top.children, n)
		return
	}
	s.inPara = true
	s.para = append(s.para, n)
}

func (s *htmlScanner) closeLink() {
	if len(s.links) == 0 {
		return
	}
	frame := s.links[len(s.links)-1]
	s.links = s.links[:len(s.links)-1]
	if len(frame.children) == 0 {
		return
	}
	if frame.url == "" {
		// Anchor without destination: keep the text, drop the wrapper.
		for _, c := range frame.children {
			s.appendInline(c)
		}
		return
	}
	s.appendInline(document.Node{
		Type:     document.TypeLink,
		Version:  1,
		URL:      frame.url,
		Target:   frame.target,
		Children: frame.children,
	})
}

func (s *htmlScanner) closeLinks() {
	for len(s.links) > 0 {
		s.closeLink()
	}
}

func (s *htmlScanner) flushParagraph() {
	if !s.inPara && len(s.para) == 0 {
		return
	}
	children := s.para
	s.para = nil
	s.inPara = false
	align := s.paraAlign
	s.paraAlign = ""
	if align == "" && len(s.divAligns) > 0 {
		align = s.divAligns[len(s.divAligns)-1]
	}
	if len(children) == 0 {
		return
	}
	p := document.Node{
		Type:     document.TypeParagraph,
		Version:  1,
		Children: children,
	}
	if align != "" && align != "left" {
		p.Format = document.FormatValue{Align: align}
	}
	s.blocks = append(s.blocks, p)
}

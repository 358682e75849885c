package document

// ViewNode is one element of the interactive read view: the same tree
// the HTML renderer walks, but kept as data so the presentation layer
// can attach behavior (lightbox, retry, placeholders) per node instead
// of flattening straight to a string.
type ViewNode struct {
	Kind        string            `json:"kind"`
	Text        string            `json:"text,omitempty"`
	Attrs       map[string]string `json:"attrs,omitempty"`
	Children    []*ViewNode       `json:"children,omitempty"`
	Images      []ViewImage       `json:"images,omitempty"`
	Unavailable bool              `json:"unavailable,omitempty"`
}

// ViewImage is a displayable image with its lightbox sibling metadata.
// For a gallery every image in the node shares the sibling set.
type ViewImage struct {
	URL         string `json:"url,omitempty"`
	Alt         string `json:"alt,omitempty"`
	Title       string `json:"title,omitempty"`
	Unavailable bool   `json:"unavailable,omitempty"`
}

// View node kinds. Inline kinds flow inside a block; the rest occupy
// vertical layout.
const (
	KindRoot      = "root"
	KindFragment  = "fragment" // invisible wrapper for split paragraphs
	KindParagraph = "p"
	KindList      = "list"
	KindListItem  = "li"
	KindQuote     = "blockquote"
	KindCode      = "pre"
	KindText      = "text"
	KindBreak     = "br"
	KindLink      = "a"
	KindImage     = "image"
	KindGallery   = "gallery"
	KindAudio     = "audio"
	KindYouTube   = "youtube"
)

// RenderView builds the interactive view tree. resolved holds the
// result of one batch media resolution for the whole document
// (CollectMediaIDs + ResolveMany); ids absent from the map render as
// "media unavailable" placeholders without failing the render.
func RenderView(doc *Document, resolved map[string]string) *ViewNode {
	resolve := func(id string) (string, bool) {
		url, ok := resolved[id]
		return url, ok
	}
	root := Walk(&doc.Root, viewVisitor(resolve))
	if root == nil {
		root = &ViewNode{Kind: KindRoot}
	}
	return root
}

func viewVisitor(resolve ResolveFunc) Visitor[*ViewNode] {
	return Visitor[*ViewNode]{
		Text: func(n *Node) *ViewNode {
			v := &ViewNode{Kind: KindText, Text: n.Text}
			attrs := map[string]string{}
			if n.Format.Bits&FormatBold != 0 {
				attrs["bold"] = "true"
			}
			if n.Format.Bits&FormatItalic != 0 {
				attrs["italic"] = "true"
			}
			if n.Format.Bits&FormatCode != 0 {
				attrs["code"] = "true"
			}
			if style := ParseStyle(n.Style).Relevant(); style != "" {
				attrs["style"] = style
			}
			if len(attrs) > 0 {
				v.Attrs = attrs
			}
			return v
		},
		Linebreak: func(_ *Node) *ViewNode {
			return &ViewNode{Kind: KindBreak}
		},
		Decorator: func(n *Node) *ViewNode { return viewDecorator(n, resolve) },
		Block: func(n *Node, children []*ViewNode) *ViewNode {
			return viewBlock(n, children)
		},
	}
}

func viewBlock(n *Node, children []*ViewNode) *ViewNode {
	children = compactViews(children)
	switch n.Type {
	case TypeRoot:
		return &ViewNode{Kind: KindRoot, Children: children}

	case TypeParagraph:
		parts := splitRuns(children, func(v *ViewNode) bool { return isBlockKind(v.Kind) })
		if len(parts) == 0 {
			return &ViewNode{Kind: KindParagraph, Attrs: paragraphAttrs(n)}
		}
		if len(parts) == 1 && parts[0].IsRun {
			return &ViewNode{Kind: KindParagraph, Attrs: paragraphAttrs(n), Children: parts[0].Inline}
		}
		// Mixed inline and block children: split into sibling blocks.
		frag := &ViewNode{Kind: KindFragment}
		for _, part := range parts {
			if part.IsRun {
				frag.Children = append(frag.Children, &ViewNode{
					Kind:     KindParagraph,
					Attrs:    paragraphAttrs(n),
					Children: part.Inline,
				})
			} else {
				frag.Children = append(frag.Children, part.Block)
			}
		}
		return frag

	case TypeHeading:
		return &ViewNode{Kind: headingTag(n.Tag), Children: children}

	case TypeList:
		listType := n.ListType
		if listType == "" {
			listType = "bullet"
		}
		return &ViewNode{Kind: KindList, Attrs: map[string]string{"listType": listType}, Children: children}

	case TypeListItem:
		return &ViewNode{Kind: KindListItem, Children: children}

	case TypeQuote:
		return &ViewNode{Kind: KindQuote, Children: children}

	case TypeCode:
		return &ViewNode{Kind: KindCode, Text: n.Code}

	case TypeLink:
		attrs := map[string]string{"href": n.URL}
		if n.Target != "" {
			attrs["target"] = n.Target
		}
		return &ViewNode{Kind: KindLink, Attrs: attrs, Children: children}

	default:
		return &ViewNode{Kind: KindFragment, Children: children}
	}
}

func viewDecorator(n *Node, resolve ResolveFunc) *ViewNode {
	switch n.Type {
	case TypeImage:
		img := resolveViewImage(n.MediaID, n.Src, n.Alt, n.Title, resolve)
		v := &ViewNode{Kind: KindImage, Images: []ViewImage{img}, Unavailable: img.Unavailable}
		attrs := map[string]string{}
		if n.CardWidth != "" && n.CardWidth != WidthNormal {
			attrs["cardWidth"] = n.CardWidth
		}
		if len(attrs) > 0 {
			v.Attrs = attrs
		}
		return v

	case TypeGallery:
		v := &ViewNode{Kind: KindGallery}
		for _, gi := range n.Images {
			v.Images = append(v.Images, resolveViewImage(gi.MediaID, gi.Src, gi.Alt, gi.Title, resolve))
		}
		return v

	case TypeAudio:
		url, ok := mediaURL(n.MediaID, n.Src, resolve)
		v := &ViewNode{Kind: KindAudio, Unavailable: !ok}
		if ok {
			v.Attrs = map[string]string{"src": url}
			if n.Title != "" {
				v.Attrs["title"] = n.Title
			}
		}
		return v

	case TypeYouTube:
		return &ViewNode{Kind: KindYouTube, Attrs: map[string]string{"videoId": n.VideoID}}
	}
	return nil
}

func resolveViewImage(mediaID, src, alt, title string, resolve ResolveFunc) ViewImage {
	url, ok := mediaURL(mediaID, src, resolve)
	return ViewImage{URL: url, Alt: alt, Title: title, Unavailable: !ok}
}

func paragraphAttrs(n *Node) map[string]string {
	switch n.Format.Align {
	case "center", "right", "justify":
		return map[string]string{"align": n.Format.Align}
	}
	return nil
}

func isBlockKind(kind string) bool {
	switch kind {
	case KindText, KindBreak, KindLink:
		return false
	}
	return true
}

// compactViews drops nils (no-op nodes) and splices fragment children
// into their parent so split paragraphs become real siblings.
func compactViews(children []*ViewNode) []*ViewNode {
	var out []*ViewNode
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.Kind == KindFragment {
			out = append(out, c.Children...)
			continue
		}
		out = append(out, c)
	}
	return out
}

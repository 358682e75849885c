package document

// Visitor is one set of handlers over the tree. Every consumer of the
// document model (plaintext, HTML export, interactive view, media id
// collection) is a Visitor over the same Walk, so they cannot drift in
// how they interpret the tree.
//
// A nil handler contributes the zero value of T.
type Visitor[T any] struct {
	Text      func(n *Node) T
	Linebreak func(n *Node) T
	Block     func(n *Node, children []T) T
	Decorator func(n *Node) T
}

// Walk folds the tree depth-first, pre-order over children.
//
// Unknown node types are transparent containers when they carry
// children and no-ops otherwise, so documents written by a newer editor
// degrade to "render nothing" instead of failing.
func Walk[T any](n *Node, v Visitor[T]) T {
	var zero T
	switch {
	case n.Type == TypeText:
		if v.Text == nil {
			return zero
		}
		return v.Text(n)
	case n.Type == TypeLinebreak:
		if v.Linebreak == nil {
			return zero
		}
		return v.Linebreak(n)
	case IsDecorator(n.Type):
		if v.Decorator == nil {
			return zero
		}
		return v.Decorator(n)
	case isKnownBlock(n.Type) || len(n.Children) > 0:
		if v.Block == nil {
			return zero
		}
		children := make([]T, 0, len(n.Children))
		for i := range n.Children {
			children = append(children, Walk(&n.Children[i], v))
		}
		return v.Block(n, children)
	default:
		return zero
	}
}

// CollectMediaIDs gathers every media id referenced anywhere in the
// tree, deduplicated in document order. The interactive renderer feeds
// this to one batch resolution call instead of resolving per node.
func CollectMediaIDs(doc *Document) []string {
	ids := Walk(&doc.Root, Visitor[[]string]{
		Block: func(_ *Node, children [][]string) []string {
			var merged []string
			for _, c := range children {
				merged = append(merged, c...)
			}
			return merged
		},
		Decorator: func(n *Node) []string {
			var out []string
			if n.MediaID != "" {
				out = append(out, n.MediaID)
			}
			for _, img := range n.Images {
				if img.MediaID != "" {
					out = append(out, img.MediaID)
				}
			}
			return out
		},
	})

	seen := make(map[string]struct{}, len(ids))
	uniq := ids[:0]
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}
	return uniq
}

// run is one segment of a paragraph's rendered children: either a
// consecutive run of inline results or a single standalone block
// result. Renderers use splitRuns to turn a paragraph whose children
// interleave inline content with block nodes (images, galleries) into
// sibling blocks, never a block nested inside a <p>.
type run[T any] struct {
	Inline []T
	Block  T
	IsRun  bool
}

func splitRuns[T any](children []T, isBlock func(T) bool) []run[T] {
	var parts []run[T]
	var current []T
	flush := func() {
		if len(current) > 0 {
			parts = append(parts, run[T]{Inline: current, IsRun: true})
			current = nil
		}
	}
	for _, c := range children {
		if isBlock(c) {
			flush()
			parts = append(parts, run[T]{Block: c})
			continue
		}
		current = append(current, c)
	}
	flush()
	return parts
}

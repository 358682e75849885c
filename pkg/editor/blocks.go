package editor

import (
	"fmt"

	"blog-cms-be/pkg/document"
)

// Path addresses a node by child indexes from the root. Mutations
// replace or remove the node at a path and trigger re-serialization of
// the whole document; there is no node-level patch protocol.
type Path []int

// NodeAt returns the node a path points to.
func NodeAt(doc *document.Document, path Path) (*document.Node, error) {
	n := &doc.Root
	for depth, idx := range path {
		if idx < 0 || idx >= len(n.Children) {
			return nil, fmt.Errorf("path index %d out of range at depth %d", idx, depth)
		}
		n = &n.Children[idx]
	}
	return n, nil
}

// RemoveNodeAt deletes the node at path from its parent's children.
// This is the remove control of every decorator block.
func RemoveNodeAt(doc *document.Document, path Path) error {
	if len(path) == 0 {
		return fmt.Errorf("cannot remove the root")
	}
	parent, err := NodeAt(doc, path[:len(path)-1])
	if err != nil {
		return err
	}
	idx := path[len(path)-1]
	if idx < 0 || idx >= len(parent.Children) {
		return fmt.Errorf("child index %d out of range", idx)
	}
	parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)
	return nil
}

// InsertBlockAt inserts a block into the root children at index,
// clamping to the end.
func InsertBlockAt(doc *document.Document, index int, n document.Node) {
	children := doc.Root.Children
	if index < 0 {
		index = 0
	}
	if index > len(children) {
		index = len(children)
	}
	children = append(children, document.Node{})
	copy(children[index+1:], children[index:])
	children[index] = n
	doc.Root.Children = children
}

// AttachMedia points an image/audio node at an uploaded media record.
// Src is left in place as a stale fallback; renderers prefer the id.
func AttachMedia(n *document.Node, mediaID string) error {
	switch n.Type {
	case document.TypeImage, document.TypeAudio:
		n.MediaID = mediaID
		return nil
	}
	return fmt.Errorf("node type %s does not carry media", n.Type)
}

// AppendGalleryImages adds uploaded images to a gallery node. The
// gallery UI is append-only; reordering is not supported.
func AppendGalleryImages(n *document.Node, images ...document.GalleryImage) error {
	if n.Type != document.TypeGallery {
		return fmt.Errorf("node type %s is not a gallery", n.Type)
	}
	n.Images = append(n.Images, images...)
	return nil
}

// RemoveGalleryImage removes one image by index from the gallery at
// path. Removing the last image removes the whole gallery node from the
// tree; an empty gallery is never left behind.
func RemoveGalleryImage(doc *document.Document, path Path, index int) error {
	n, err := NodeAt(doc, path)
	if err != nil {
		return err
	}
	if n.Type != document.TypeGallery {
		return fmt.Errorf("node type %s is not a gallery", n.Type)
	}
	if index < 0 || index >= len(n.Images) {
		return fmt.Errorf("gallery image index %d out of range", index)
	}
	n.Images = append(n.Images[:index], n.Images[index+1:]...)
	if len(n.Images) == 0 {
		return RemoveNodeAt(doc, path)
	}
	return nil
}

package editor

import "blog-cms-be/pkg/document"

// Lightbox is the full-screen viewer state for the interactive read
// view. It is seeded from the clicked image's sibling set: for a
// gallery, all images in the same node; for a single image node, just
// that image. Page scroll is locked while the viewer is open.
type Lightbox struct {
	Images       []document.ViewImage
	Index        int
	Open         bool
	ScrollLocked bool
}

// OpenLightbox builds a viewer over a view node's images at the clicked
// index. Returns nil when the node carries no images.
func OpenLightbox(node *document.ViewNode, clicked int) *Lightbox {
	if node == nil || len(node.Images) == 0 {
		return nil
	}
	if clicked < 0 {
		clicked = 0
	}
	if clicked >= len(node.Images) {
		clicked = len(node.Images) - 1
	}
	return &Lightbox{
		Images:       node.Images,
		Index:        clicked,
		Open:         true,
		ScrollLocked: true,
	}
}

// Next cycles forward, wrapping at the end.
func (l *Lightbox) Next() {
	if len(l.Images) == 0 {
		return
	}
	l.Index = (l.Index + 1) % len(l.Images)
}

// Prev cycles backward, wrapping at the start.
func (l *Lightbox) Prev() {
	if len(l.Images) == 0 {
		return
	}
	l.Index = (l.Index - 1 + len(l.Images)) % len(l.Images)
}

// Close dismisses the viewer and releases the scroll lock.
func (l *Lightbox) Close() {
	l.Open = false
	l.ScrollLocked = false
}

// HandleKey maps keyboard input to viewer actions. Unhandled keys
// return false so the caller can let them propagate.
func (l *Lightbox) HandleKey(key string) bool {
	if !l.Open {
		return false
	}
	switch key {
	case "ArrowRight":
		l.Next()
	case "ArrowLeft":
		l.Prev()
	case "Escape":
		l.Close()
	default:
		return false
	}
	return true
}

// Current returns the image under the cursor.
func (l *Lightbox) Current() document.ViewImage {
	if l.Index < 0 || l.Index >= len(l.Images) {
		return document.ViewImage{}
	}
	return l.Images[l.Index]
}

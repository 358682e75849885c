package editor

import (
	"testing"

	"blog-cms-be/pkg/document"
)

func galleryDoc(images ...document.GalleryImage) *document.Document {
	return &document.Document{Root: document.Node{Type: document.TypeRoot, Version: 1, Children: []document.Node{
		document.NewParagraph(document.NewTextNode("intro", 0)),
		{Type: document.TypeGallery, Version: 1, Images: images},
	}}}
}

func TestRemoveGalleryImageKeepsNode(t *testing.T) {
	doc := galleryDoc(
		document.GalleryImage{Src: "a.jpg"},
		document.GalleryImage{Src: "b.jpg"},
	)

	if err := RemoveGalleryImage(doc, Path{1}, 0); err != nil {
		t.Fatalf("RemoveGalleryImage failed: %v", err)
	}
	g := doc.Root.Children[1]
	if g.Type != document.TypeGallery || len(g.Images) != 1 || g.Images[0].Src != "b.jpg" {
		t.Errorf("unexpected gallery after removal: %+v", g)
	}
}

func TestRemoveLastGalleryImageRemovesNode(t *testing.T) {
	doc := galleryDoc(document.GalleryImage{Src: "only.jpg"})

	if err := RemoveGalleryImage(doc, Path{1}, 0); err != nil {
		t.Fatalf("RemoveGalleryImage failed: %v", err)
	}
	if len(doc.Root.Children) != 1 {
		t.Fatalf("gallery node should be gone, children = %d", len(doc.Root.Children))
	}
	if doc.Root.Children[0].Type != document.TypeParagraph {
		t.Errorf("survivor should be the paragraph, got %s", doc.Root.Children[0].Type)
	}
}

func TestRemoveNodeAt(t *testing.T) {
	doc := galleryDoc(document.GalleryImage{Src: "a.jpg"})

	if err := RemoveNodeAt(doc, Path{0}); err != nil {
		t.Fatalf("RemoveNodeAt failed: %v", err)
	}
	if len(doc.Root.Children) != 1 || doc.Root.Children[0].Type != document.TypeGallery {
		t.Errorf("unexpected children after removal: %+v", doc.Root.Children)
	}

	if err := RemoveNodeAt(doc, Path{}); err == nil {
		t.Error("removing the root should fail")
	}
	if err := RemoveNodeAt(doc, Path{7}); err == nil {
		t.Error("out of range removal should fail")
	}
}

func TestInsertBlockAt(t *testing.T) {
	doc := galleryDoc(document.GalleryImage{Src: "a.jpg"})
	img := document.Node{Type: document.TypeImage, Version: 1, MediaID: "m-1"}

	InsertBlockAt(doc, 1, img)
	if len(doc.Root.Children) != 3 || doc.Root.Children[1].Type != document.TypeImage {
		t.Fatalf("insert at middle failed: %+v", doc.Root.Children)
	}

	InsertBlockAt(doc, 99, document.Node{Type: document.TypeAudio, Version: 1, MediaID: "m-2"})
	if doc.Root.Children[len(doc.Root.Children)-1].Type != document.TypeAudio {
		t.Error("out of range insert should clamp to the end")
	}
}

func TestAttachMedia(t *testing.T) {
	img := document.Node{Type: document.TypeImage, Version: 1, Src: "old.jpg"}
	if err := AttachMedia(&img, "m-9"); err != nil {
		t.Fatalf("AttachMedia failed: %v", err)
	}
	if img.MediaID != "m-9" || img.Src != "old.jpg" {
		t.Errorf("media indirection broken: %+v", img)
	}

	p := document.NewParagraph()
	if err := AttachMedia(&p, "m-9"); err == nil {
		t.Error("attaching media to a paragraph should fail")
	}
}

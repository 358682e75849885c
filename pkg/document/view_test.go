package document

import (
	"reflect"
	"testing"
)

func TestCollectMediaIDs(t *testing.T) {
	doc := docFromBlocks(
		Node{Type: TypeImage, Version: 1, MediaID: "m-1"},
		Node{Type: TypeGallery, Version: 1, Images: []GalleryImage{
			{MediaID: "m-2"}, {Src: "legacy.jpg"}, {MediaID: "m-1"},
		}},
		NewParagraph(NewTextNode("text", 0)),
		Node{Type: TypeAudio, Version: 1, MediaID: "m-3"},
	)

	got := CollectMediaIDs(doc)
	want := []string{"m-1", "m-2", "m-3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CollectMediaIDs = %v, want %v", got, want)
	}
}

func TestRenderViewUnresolvableMediaFallback(t *testing.T) {
	doc := docFromBlocks(
		Node{Type: TypeImage, Version: 1, MediaID: "missing"},
		NewParagraph(NewTextNode("survives", 0)),
	)

	root := RenderView(doc, map[string]string{})
	if len(root.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(root.Children))
	}
	img := root.Children[0]
	if !img.Unavailable {
		t.Error("unresolvable image should be flagged unavailable")
	}
	if root.Children[1].Kind != KindParagraph {
		t.Error("sibling render must not be aborted by a bad media node")
	}
}

func TestRenderViewGalleryImages(t *testing.T) {
	doc := docFromBlocks(Node{Type: TypeGallery, Version: 1, Images: []GalleryImage{
		{MediaID: "m-1", Alt: "first"},
		{MediaID: "m-2", Alt: "second"},
		{MediaID: "gone", Alt: "third"},
	}})

	root := RenderView(doc, map[string]string{
		"m-1": "https://cdn/1.jpg",
		"m-2": "https://cdn/2.jpg",
	})
	g := root.Children[0]
	if g.Kind != KindGallery || len(g.Images) != 3 {
		t.Fatalf("unexpected gallery node: %+v", g)
	}
	if g.Images[0].URL != "https://cdn/1.jpg" || g.Images[0].Unavailable {
		t.Errorf("first image wrong: %+v", g.Images[0])
	}
	if !g.Images[2].Unavailable {
		t.Error("unresolved gallery image should be flagged, not dropped")
	}
}

func TestRenderViewParagraphSplitting(t *testing.T) {
	doc := docFromBlocks(Node{Type: TypeParagraph, Version: 1, Children: []Node{
		NewTextNode("before", 0),
		{Type: TypeImage, Version: 1, Src: "pic.jpg"},
		NewTextNode("after", 0),
	}})

	root := RenderView(doc, nil)
	if len(root.Children) != 3 {
		t.Fatalf("expected 3 sibling blocks, got %d", len(root.Children))
	}
	kinds := []string{root.Children[0].Kind, root.Children[1].Kind, root.Children[2].Kind}
	want := []string{KindParagraph, KindImage, KindParagraph}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("kinds = %v, want %v", kinds, want)
	}
}

func TestRenderViewTextAttributes(t *testing.T) {
	doc := docFromBlocks(NewParagraph(
		NewTextNode("strong", FormatBold),
		Node{Type: TypeText, Version: 1, Text: "tinted", Style: "color: red"},
	))

	p := RenderView(doc, nil).Children[0]
	if p.Children[0].Attrs["bold"] != "true" {
		t.Errorf("bold attribute missing: %+v", p.Children[0])
	}
	if p.Children[1].Attrs["style"] != "color: red" {
		t.Errorf("style attribute missing: %+v", p.Children[1])
	}
}

func TestRenderViewUnknownLeafIsNoop(t *testing.T) {
	doc := docFromBlocks(
		Node{Type: "widget", Version: 1},
		NewParagraph(NewTextNode("kept", 0)),
	)

	root := RenderView(doc, nil)
	if len(root.Children) != 1 || root.Children[0].Kind != KindParagraph {
		t.Errorf("unknown leaf should render nothing: %+v", root.Children)
	}
}

package legacy

import (
	"context"
	"fmt"
	"strings"

	"blog-cms-be/pkg/document"
	"blog-cms-be/pkg/media"
)

// ImportedPost is the fully converted form of one legacy item, ready
// for the sink to persist.
type ImportedPost struct {
	LegacyID       string
	Title          string
	Document       *document.Document
	Serialized     string
	Plaintext      string
	WordCount      int
	FeatureMediaID string
	MigratedFiles  int
}

// Sink persists import results. EnsureTarget maps a legacy id to the
// post that will own it, creating a stub on first import, so re-imports
// hit the same row and uploads have an owner before the body exists.
type Sink interface {
	EnsureTarget(ctx context.Context, legacyID, title string) (string, error)
	SaveImported(ctx context.Context, postID string, post *ImportedPost) error
}

// Importer converts legacy items into documents and hands them to the
// sink. Importing the same item twice replaces the previous result,
// media included.
type Importer struct {
	source   SourceStore
	media    media.Store
	sink     Sink
	rewriter *Rewriter
}

func NewImporter(source SourceStore, store media.Store, sink Sink) *Importer {
	return &Importer{
		source:   source,
		media:    store,
		sink:     sink,
		rewriter: NewRewriter(store, source),
	}
}

// ImportItem imports a single legacy item end to end: body conversion,
// media migration, feature image, plaintext extraction, persistence.
func (imp *Importer) ImportItem(ctx context.Context, legacyID string) (*ImportedPost, error) {
	item, err := imp.source.Item(ctx, legacyID)
	if err != nil {
		return nil, err
	}

	postID, err := imp.sink.EnsureTarget(ctx, item.ID, item.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve import target for %s: %w", item.ID, err)
	}

	// Replace semantics: whatever a previous import uploaded for this
	// post is stale now.
	if err := imp.media.DeleteOwned(ctx, media.OwnerPost, postID); err != nil {
		return nil, fmt.Errorf("failed to clear prior media for %s: %w", item.ID, err)
	}

	doc, err := imp.convert(item)
	if err != nil {
		return nil, err
	}

	migrated, err := imp.rewriter.Rewrite(ctx, postID, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate media for %s: %w", item.ID, err)
	}

	post := &ImportedPost{
		LegacyID:      item.ID,
		Title:         item.Title,
		Document:      doc,
		MigratedFiles: migrated,
	}

	if item.FeatureImage != "" {
		id, err := imp.rewriter.MigrateFile(ctx, postID, item.FeatureImage, "feature")
		if err != nil {
			return nil, fmt.Errorf("failed to migrate feature image for %s: %w", item.ID, err)
		}
		post.FeatureMediaID = id
	}

	post.Serialized, err = document.Serialize(doc)
	if err != nil {
		return nil, err
	}
	if text, ok := document.Plaintext(doc); ok {
		post.Plaintext = text
		post.WordCount = document.WordCount(text)
	}

	if err := imp.sink.SaveImported(ctx, postID, post); err != nil {
		return nil, fmt.Errorf("failed to save imported post %s: %w", item.ID, err)
	}
	return post, nil
}

// convert picks the richest body representation the item carries:
// card graph, then raw HTML, then the legacy plaintext extraction.
func (imp *Importer) convert(item *Item) (*document.Document, error) {
	var blocks []document.Node
	switch {
	case item.CardGraph != "":
		var err error
		blocks, err = ImportCardGraph(item.CardGraph)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", item.ID, err)
		}
	case item.HTML != "":
		blocks = ImportHTML(item.HTML)
	case strings.TrimSpace(item.Plaintext) != "":
		blocks = plaintextBlocks(item.Plaintext)
	}

	doc := document.New()
	doc.Root.Children = blocks
	return doc, nil
}

// plaintextBlocks turns blank-line separated prose into paragraphs,
// single newlines into line breaks.
func plaintextBlocks(text string) []document.Node {
	var blocks []document.Node
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		var children []document.Node
		for i, line := range strings.Split(para, "\n") {
			if i > 0 {
				children = append(children, document.Node{Type: document.TypeLinebreak, Version: 1})
			}
			children = append(children, document.NewTextNode(line, 0))
		}
		blocks = append(blocks, document.NewParagraph(children...))
	}
	return blocks
}

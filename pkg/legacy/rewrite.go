package legacy

import (
	"context"
	"fmt"
	"mime"
	"path"

	"blog-cms-be/pkg/document"
	"blog-cms-be/pkg/media"
)

// Rewriter migrates a document's legacy image references into managed
// media: each src still pointing at legacy storage is fetched, uploaded
// under the importing post, and spliced with the new mediaId. The src
// stays in place as a render fallback.
type Rewriter struct {
	media  media.Store
	source SourceStore
}

func NewRewriter(store media.Store, source SourceStore) *Rewriter {
	return &Rewriter{media: store, source: source}
}

// Rewrite uploads every resolvable legacy reference in doc exactly once
// (duplicate srcs share one upload) and returns how many distinct files
// were migrated. Dangling references are left untouched.
func (r *Rewriter) Rewrite(ctx context.Context, ownerID string, doc *document.Document) (int, error) {
	srcs := pendingSrcs(&doc.Root)
	if len(srcs) == 0 {
		return 0, nil
	}

	uploaded := make(map[string]string, len(srcs))
	for _, src := range srcs {
		id, err := r.migrateOne(ctx, ownerID, src)
		if err != nil {
			return len(uploaded), err
		}
		if id != "" {
			uploaded[src] = id
		}
	}

	spliceMediaIDs(&doc.Root, uploaded)
	return len(uploaded), nil
}

// MigrateFile uploads a single legacy file (e.g. a feature image) and
// returns its new media id, or "" when the reference is dangling.
func (r *Rewriter) MigrateFile(ctx context.Context, ownerID, src, collection string) (string, error) {
	return r.migrate(ctx, ownerID, src, collection)
}

func (r *Rewriter) migrateOne(ctx context.Context, ownerID, src string) (string, error) {
	return r.migrate(ctx, ownerID, src, "content")
}

func (r *Rewriter) migrate(ctx context.Context, ownerID, src, collection string) (string, error) {
	p := NormalizeLegacyPath(src)
	if p == "" || !r.source.FileExists(p) {
		return "", nil
	}
	rc, err := r.source.OpenFile(p)
	if err != nil {
		return "", fmt.Errorf("failed to open legacy file %s: %w", p, err)
	}
	defer rc.Close()

	records, err := r.media.Upload(ctx, media.OwnerPost, ownerID, []media.File{{
		Name:     path.Base(p),
		MimeType: mime.TypeByExtension(path.Ext(p)),
		Content:  rc,
	}}, media.UploadOptions{Collection: collection})
	if err != nil {
		return "", fmt.Errorf("failed to upload legacy file %s: %w", p, err)
	}
	if len(records) == 0 {
		return "", nil
	}
	return records[0].ID, nil
}

// pendingSrcs collects, in document order and deduplicated, every image
// or gallery src that has no mediaId yet.
func pendingSrcs(n *document.Node) []string {
	var srcs []string
	seen := make(map[string]bool)
	add := func(src, mediaID string) {
		if src == "" || mediaID != "" || seen[src] {
			return
		}
		seen[src] = true
		srcs = append(srcs, src)
	}

	var walk func(*document.Node)
	walk = func(n *document.Node) {
		switch n.Type {
		case document.TypeImage:
			add(n.Src, n.MediaID)
		case document.TypeGallery:
			for i := range n.Images {
				add(n.Images[i].Src, n.Images[i].MediaID)
			}
		}
		for i := range n.Children {
			walk(&n.Children[i])
		}
	}
	walk(n)
	return srcs
}

func spliceMediaIDs(n *document.Node, uploaded map[string]string) {
	switch n.Type {
	case document.TypeImage:
		if id, ok := uploaded[n.Src]; ok && n.MediaID == "" {
			n.MediaID = id
		}
	case document.TypeGallery:
		for i := range n.Images {
			img := &n.Images[i]
			if id, ok := uploaded[img.Src]; ok && img.MediaID == "" {
				img.MediaID = id
			}
		}
	}
	for i := range n.Children {
		spliceMediaIDs(&n.Children[i], uploaded)
	}
}

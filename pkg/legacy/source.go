package legacy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Item is one row of the legacy CMS being imported. A given item
// carries at most one of CardGraph/HTML as its authored body; Plaintext
// is the legacy system's own extraction, used only as a last resort.
type Item struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	CardGraph    string `json:"card_graph,omitempty"`
	HTML         string `json:"html,omitempty"`
	Plaintext    string `json:"plaintext,omitempty"`
	FeatureImage string `json:"feature_image,omitempty"`
}

// SourceStore is read-only access to the legacy CMS's data and file
// storage. FileExists takes a normalized path (see NormalizeLegacyPath)
// so dangling references are skipped instead of imported as broken.
type SourceStore interface {
	ItemIDs(ctx context.Context) ([]string, error)
	Item(ctx context.Context, id string) (*Item, error)
	FileExists(path string) bool
	OpenFile(path string) (io.ReadCloser, error)
}

// NormalizeLegacyPath maps a legacy image URL or path to the relative
// path it occupies in legacy storage: scheme/host/query stripped, the
// legacy content prefix removed. Empty result means the reference
// cannot live in legacy storage at all.
func NormalizeLegacyPath(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	p := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		p = u.Path
	}
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimPrefix(p, "/content/images/")
	p = strings.TrimPrefix(p, "content/images/")
	return strings.TrimLeft(p, "/")
}

// DirSource reads a legacy export laid out on disk: items/<id>.json for
// rows and files/ for the image storage.
type DirSource struct {
	root string
}

// NewDirSource does not touch the filesystem; a missing export
// directory surfaces when the first item is listed or read.
func NewDirSource(root string) *DirSource {
	return &DirSource{root: root}
}

func (d *DirSource) ItemIDs(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(d.root, "items"))
	if err != nil {
		return nil, fmt.Errorf("failed to list legacy items: %w", err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	return ids, nil
}

func (d *DirSource) Item(_ context.Context, id string) (*Item, error) {
	raw, err := os.ReadFile(filepath.Join(d.root, "items", id+".json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy item %s: %w", id, err)
	}
	var item Item
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("failed to decode legacy item %s: %w", id, err)
	}
	if item.ID == "" {
		item.ID = id
	}
	return &item, nil
}

func (d *DirSource) FileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(d.root, "files", filepath.FromSlash(path)))
	return err == nil && !info.IsDir()
}

func (d *DirSource) OpenFile(path string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(d.root, "files", filepath.FromSlash(path)))
}

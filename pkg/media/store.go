package media

import (
	"context"
	"io"
	"time"
)

// Owner types media records attach to.
const (
	OwnerPost = "post"
	OwnerSite = "site"
)

// File is one upload payload. Content is read exactly once.
type File struct {
	Name     string
	MimeType string
	Content  io.Reader
}

// UploadOptions groups the optional knobs of an upload.
type UploadOptions struct {
	Collection string // e.g. "content", "feature"
}

// Record is a stored media row. URLs are never stored alongside it;
// they are derived on demand so signed URLs can rotate freely.
type Record struct {
	ID         string
	OwnerType  string
	OwnerID    string
	FileName   string
	Path       string
	MimeType   string
	Size       int64
	Collection string
	CreatedAt  time.Time
}

// Store is the media collaborator: upload, id-to-URL resolution and
// deletion. The document core never talks to object storage directly.
type Store interface {
	Upload(ctx context.Context, ownerType, ownerID string, files []File, opts UploadOptions) ([]Record, error)
	ResolveURL(ctx context.Context, mediaID string) (string, error)
	ResolveMany(ctx context.Context, mediaIDs []string) (map[string]string, error)
	Delete(ctx context.Context, mediaID string) error
	DeleteOwned(ctx context.Context, ownerType, ownerID string) error
}

// BlobStorage is the byte-level backend a Store persists file content
// to. The disk implementation serves local deployments; anything
// S3-shaped fits behind the same three calls.
type BlobStorage interface {
	Save(ctx context.Context, path string, r io.Reader) (int64, error)
	Open(path string) (io.ReadCloser, error)
	Remove(path string) error
}

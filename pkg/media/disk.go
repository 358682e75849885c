package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DiskStorage stores blobs under a root directory. It exists for local
// deployments and tests; production deployments put an object store
// behind the same BlobStorage interface.
type DiskStorage struct {
	root string
}

func NewDiskStorage(root string) (*DiskStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &DiskStorage{root: root}, nil
}

// Save streams r to the given path, creating parent directories. The
// copy is chunked and checks ctx between chunks so an abandoned upload
// (navigation away mid-upload) stops promptly; a partial file is
// removed on abort.
func (d *DiskStorage) Save(ctx context.Context, path string, r io.Reader) (int64, error) {
	full, err := d.resolve(path)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create media directory: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return 0, fmt.Errorf("failed to create media file: %w", err)
	}
	defer f.Close()

	var written int64
	buf := make([]byte, 64*1024)
	for {
		if err := ctx.Err(); err != nil {
			os.Remove(full)
			return written, err
		}
		n, rerr := r.Read(buf)
		if n > 0 {
			if _, werr := f.Write(buf[:n]); werr != nil {
				os.Remove(full)
				return written, fmt.Errorf("failed to write media file: %w", werr)
			}
			written += int64(n)
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			os.Remove(full)
			return written, fmt.Errorf("failed to read upload: %w", rerr)
		}
	}
}

func (d *DiskStorage) Open(path string) (io.ReadCloser, error) {
	full, err := d.resolve(path)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

func (d *DiskStorage) Remove(path string) error {
	full, err := d.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// resolve joins and confines path to the storage root.
func (d *DiskStorage) resolve(path string) (string, error) {
	full := filepath.Join(d.root, filepath.FromSlash(path))
	if !strings.HasPrefix(full, filepath.Clean(d.root)+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes storage root: %s", path)
	}
	return full, nil
}

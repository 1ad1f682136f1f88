package store

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

// FileBackend persists each key as a JSON file under base URL. Any afs supported
// location works (local path, file://, mem://, gs://, s3://).
type FileBackend struct {
	fs      afs.Service
	baseURL string
}

// NewFileBackend creates a backend rooted at baseURL
func NewFileBackend(baseURL string) *FileBackend {
	return &FileBackend{fs: afs.New(), baseURL: baseURL}
}

func (f *FileBackend) URL(key string) string {
	return url.Join(f.baseURL, key+".json")
}

func (f *FileBackend) Get(ctx context.Context, key string) ([]byte, error) {
	URL := f.URL(key)
	ok, err := f.fs.Exists(ctx, URL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return f.fs.DownloadWithURL(ctx, URL)
}

// Put replaces the object at key URL with data
func (f *FileBackend) Put(ctx context.Context, key string, data []byte) error {
	URL := f.URL(key)
	if err := f.fs.Upload(ctx, URL, 0o600, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %v: %w", URL, err)
	}
	return nil
}

func (f *FileBackend) Delete(ctx context.Context, key string) error {
	URL := f.URL(key)
	ok, err := f.fs.Exists(ctx, URL)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return f.fs.Delete(ctx, URL)
}

package memory

import (
	"context"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/go-faster/errors"

	"github.com/xenking/product-drawer/internal/domain/blob"
)

var _ blob.Store = (*BlobStore)(nil)

// Object is a stored blob.
type Object struct {
	Data        []byte
	ContentType string
}

// BlobStore keeps objects in memory. Download URLs are BaseURL + "/" + name.
type BlobStore struct {
	baseURL string

	mu      sync.RWMutex
	objects map[string]Object
	puts    int
}

// NewBlobStore returns an empty BlobStore serving URLs under baseURL.
func NewBlobStore(baseURL string) *BlobStore {
	return &BlobStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]Object),
	}
}

// Put stores body under name, replacing any previous object.
func (s *BlobStore) Put(ctx context.Context, name string, body io.Reader, contentType string) error {
	if err := blob.ValidateName(name); err != nil {
		return err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return errors.Wrapf(err, "read %q", name)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[name] = Object{Data: data, ContentType: contentType}
	s.puts++
	return nil
}

// DownloadURL returns the URL of an existing object.
func (s *BlobStore) DownloadURL(_ context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.objects[name]; !ok {
		return "", errors.Wrapf(blob.ErrNotFound, "%q", name)
	}
	return s.baseURL + "/" + url.PathEscape(name), nil
}

// Get returns a stored object.
func (s *BlobStore) Get(name string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.objects[name]
	return o, ok
}

// Puts reports how many Put calls succeeded.
func (s *BlobStore) Puts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.puts
}

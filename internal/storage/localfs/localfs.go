// Package localfs stores product images as files in a local directory that
// the HTTP server exposes under a public base URL.
package localfs

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"

	"github.com/xenking/product-drawer/internal/domain/blob"
)

var _ blob.Store = (*Store)(nil)

// Store keeps objects under Dir.
type Store struct {
	dir     string
	baseURL string
}

// New creates dir if needed and returns a Store whose download URLs are
// publicBaseURL + "/" + name.
func New(dir, publicBaseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create media dir %s", dir)
	}
	return &Store{
		dir:     dir,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Dir returns the directory objects are written to.
func (s *Store) Dir() string { return s.dir }

// Put writes body to name. The file is written to a temporary sibling and
// renamed so readers never observe a partial image.
func (s *Store) Put(ctx context.Context, name string, body io.Reader, _ string) error {
	if err := blob.ValidateName(name); err != nil {
		return err
	}
	target := filepath.Join(s.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.Wrapf(err, "create dir for %q", name)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, &ctxReader{ctx: ctx, r: body}); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "write %q", name)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %q", name)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return errors.Wrapf(err, "rename %q", name)
	}
	return nil
}

// DownloadURL returns the public URL of an existing object.
func (s *Store) DownloadURL(_ context.Context, name string) (string, error) {
	if err := blob.ValidateName(name); err != nil {
		return "", err
	}
	if _, err := os.Stat(filepath.Join(s.dir, filepath.FromSlash(name))); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", errors.Wrapf(blob.ErrNotFound, "%q", name)
		}
		return "", errors.Wrapf(err, "stat %q", name)
	}
	return s.baseURL + "/" + escapePath(name), nil
}

// Ping reports whether the media directory is accessible.
func (s *Store) Ping(context.Context) error {
	_, err := os.Stat(s.dir)
	return err
}

func escapePath(name string) string {
	segs := strings.Split(name, "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return strings.Join(segs, "/")
}

// ctxReader stops copying once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

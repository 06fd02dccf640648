package screen

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path"
	"strings"

	"github.com/go-faster/errors"

	"github.com/xenking/product-drawer/internal/domain/blob"
)

// ImageFile is an image picked in the form.
type ImageFile interface {
	// URI identifies the picked file, e.g. "file:///storage/DCIM/IMG_01.jpg".
	URI() string
	Open() (io.ReadCloser, error)
}

// LocalImage is a file on the local filesystem. The path may carry a
// "file://" scheme.
type LocalImage string

// URI returns the path as given.
func (l LocalImage) URI() string { return string(l) }

// Open opens the file with any "file://" prefix removed.
func (l LocalImage) Open() (io.ReadCloser, error) {
	return os.Open(strings.TrimPrefix(string(l), "file://"))
}

// UploadedImage is a file received in a multipart form. Its URI is the
// client-supplied file name.
type UploadedImage struct {
	Header *multipart.FileHeader
}

// URI returns the client-supplied file name.
func (u UploadedImage) URI() string { return u.Header.Filename }

// Open opens the uploaded part.
func (u UploadedImage) Open() (io.ReadCloser, error) { return u.Header.Open() }

// ObjectName returns the last "/"-separated segment of uri. Distinct files
// with the same base name map to the same object.
func ObjectName(uri string) string {
	return uri[strings.LastIndex(uri, "/")+1:]
}

// Uploader puts picked images into object storage.
type Uploader struct {
	blobs blob.Store
}

// NewUploader returns an Uploader writing to blobs.
func NewUploader(blobs blob.Store) *Uploader {
	return &Uploader{blobs: blobs}
}

// Upload stores img under ObjectName(img.URI()) and returns the download URL.
func (u *Uploader) Upload(ctx context.Context, img ImageFile) (string, error) {
	name := ObjectName(img.URI())

	rc, err := img.Open()
	if err != nil {
		return "", errors.Wrapf(err, "open image %q", img.URI())
	}
	defer func() { _ = rc.Close() }()

	if err := u.blobs.Put(ctx, name, rc, mime.TypeByExtension(strings.ToLower(path.Ext(name)))); err != nil {
		return "", errors.Wrap(err, "put image")
	}

	url, err := u.blobs.DownloadURL(ctx, name)
	if err != nil {
		return "", errors.Wrap(err, "resolve download url")
	}
	return url, nil
}

// Package blob describes the object storage product images are uploaded to.
package blob

import (
	"context"
	"io"
	"strings"

	"github.com/go-faster/errors"
)

// ErrInvalidName is returned for object names that are empty or would
// resolve outside of the store's namespace.
var ErrInvalidName = errors.New("invalid object name")

// ErrNotFound is returned when resolving the URL of a missing object.
var ErrNotFound = errors.New("object not found")

// Store puts objects by name and resolves their public download URL.
// Putting an existing name overwrites it; the URL of a name does not change
// across overwrites.
type Store interface {
	Put(ctx context.Context, name string, body io.Reader, contentType string) error
	DownloadURL(ctx context.Context, name string) (string, error)
}

// ValidateName rejects names that cannot be stored verbatim.
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return errors.Wrapf(ErrInvalidName, "%q", name)
	case strings.HasPrefix(name, "/"), strings.Contains(name, "\\"):
		return errors.Wrapf(ErrInvalidName, "%q", name)
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return errors.Wrapf(ErrInvalidName, "%q", name)
		}
	}
	return nil
}

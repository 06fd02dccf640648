package screen

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/product-drawer/internal/storage/memory"
)

func TestObjectName(t *testing.T) {
	cases := map[string]string{
		"file:///data/user/0/cache/IMG_0001.jpg": "IMG_0001.jpg",
		"/tmp/a/b/photo.png":                     "photo.png",
		"photo.png":                              "photo.png",
		"content://media/external/images/42":     "42",
		"dir/":                                   "",
	}
	for uri, want := range cases {
		assert.Equal(t, want, ObjectName(uri), uri)
	}
}

func TestUploader_UploadedImage(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", "shoe.webp")
	require.NoError(t, err)
	_, err = io.WriteString(fw, "webp")
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	_, header, err := req.FormFile("image")
	require.NoError(t, err)

	blobs := memory.NewBlobStore("https://media.test")
	url, err := NewUploader(blobs).Upload(context.Background(), UploadedImage{Header: header})
	require.NoError(t, err)
	assert.Equal(t, "https://media.test/shoe.webp", url)

	obj, ok := blobs.Get("shoe.webp")
	require.True(t, ok)
	assert.Equal(t, "webp", string(obj.Data))
}

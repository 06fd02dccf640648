package blob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	valid := []string{"photo.jpg", "IMG_0001.PNG", "a/b.png", "name with spaces.jpg"}
	for _, name := range valid {
		assert.NoError(t, ValidateName(name), name)
	}

	invalid := []string{"", ".", "..", "/etc/passwd", "../up.jpg", "a/../../b", `c:\x.png`}
	for _, name := range invalid {
		err := ValidateName(name)
		require.Error(t, err, name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

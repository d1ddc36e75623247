package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedImageFile(t *testing.T) {
	assert.True(t, AllowedImageFile("photo.jpg"))
	assert.True(t, AllowedImageFile("PHOTO.JPEG"))
	assert.True(t, AllowedImageFile("scan.png"))
	assert.True(t, AllowedImageFile("field.gif"))

	// no decoder is registered for webp, so it must be rejected up front
	assert.False(t, AllowedImageFile("photo.webp"))
	assert.False(t, AllowedImageFile("script.exe"))
	assert.False(t, AllowedImageFile("noextension"))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "field_photo_1.jpg", sanitizeFilename("field photo/1.jpg"))
}

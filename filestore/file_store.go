// Package filestore persists post images and validates uploads before they
// are stored.
package filestore

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/Luismorlan/postmux/store"
)

// FileStore persists an uploaded blob under a content-derived key and maps
// keys back to serving URLs.
type FileStore interface {
	Store(fileName string, data []byte) (key string, err error)
	GetUrlFromKey(key string) string
	CleanUp()
}

// ValidateImage rejects uploads that are not decodable images. The caller
// surfaces the ValidationError inline on the image field.
func ValidateImage(data []byte) error {
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return &store.ValidationError{
			Field:   "image",
			Message: "uploaded file is not a valid image",
		}
	}
	return nil
}

package valueobject

import (
	"path"
	"strings"
)

const DefaultImageContentType = "image/jpeg"

var imageContentTypes = map[string]string{
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ImageContentTypeFromFilename maps a file extension to the content type
// stored with the blob. The bytes themselves are never inspected.
func ImageContentTypeFromFilename(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ct, ok := imageContentTypes[ext]; ok {
		return ct
	}
	return DefaultImageContentType
}

package client

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ImagePayload is one attached image, encoded for the request body.
type ImagePayload struct {
	Data     string `json:"data"`
	MimeType string `json:"mime_type"`
}

// EncodeImage converts raw image bytes into a request payload.
func EncodeImage(data []byte, mimeType string) ImagePayload {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return ImagePayload{
		Data:     base64.StdEncoding.EncodeToString(data),
		MimeType: mimeType,
	}
}

// EncodeImageFile reads and encodes an image file. The mime type is sniffed
// from content, falling back to the file extension.
func EncodeImageFile(path string) (ImagePayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImagePayload{}, fmt.Errorf("failed to read image %s: %w", path, err)
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = mimeTypeForExtension(filepath.Ext(path))
	}

	return EncodeImage(data, mimeType), nil
}

func mimeTypeForExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

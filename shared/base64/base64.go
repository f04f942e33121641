package base64

import (
	stdBase64 "encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	dataURLPrefix = "data:"
	base64Marker  = ";base64,"
)

var ErrNotDataURL = errors.New("value is not a base64 data URL")

// GetContentType returns the media type of a data URL, or "" when it is not one.
func GetContentType(file string) string {
	start := len(dataURLPrefix)
	end := strings.Index(file, base64Marker)

	if !strings.HasPrefix(file, dataURLPrefix) || end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// Decode returns the content type and payload of a data URL.
func Decode(file string) (contentType string, data []byte, err error) {
	contentType = GetContentType(file)
	if contentType == "" {
		return "", nil, ErrNotDataURL
	}

	payload := file[strings.Index(file, base64Marker)+len(base64Marker):]

	data, err = stdBase64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}

	return contentType, data, nil
}

// Extension maps an image content type to a file extension.
func Extension(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}

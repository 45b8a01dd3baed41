package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"
)

var ErrNotDataURI = errors.New("value is not a data URI")

// DataURI is a decoded data: URI as sent by the admin UI for pasted images.
type DataURI struct {
	ContentType string
	Data        []byte
}

func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// ParseDataURI decodes "data:<mime>;base64,<payload>". Only base64 payloads are accepted.
func ParseDataURI(s string) (*DataURI, error) {
	if !IsDataURI(s) {
		return nil, ErrNotDataURI
	}
	header, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ",")
	if !ok {
		return nil, errors.New("data URI has no payload")
	}

	params := strings.Split(header, ";")
	if params[len(params)-1] != "base64" {
		return nil, errors.New("data URI is not base64 encoded")
	}
	contentType := "application/octet-stream"
	if params[0] != "" && params[0] != "base64" {
		mediaType, _, err := mime.ParseMediaType(params[0])
		if err != nil {
			return nil, fmt.Errorf("invalid data URI media type: %w", err)
		}
		contentType = mediaType
	}

	payload = strings.TrimSpace(payload)
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// некоторые клиенты не добавляют padding
		if data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "=")); err != nil {
			return nil, fmt.Errorf("invalid data URI payload: %w", err)
		}
	}
	if len(data) == 0 {
		return nil, errors.New("data URI payload is empty")
	}

	return &DataURI{ContentType: contentType, Data: data}, nil
}

// ExtensionFromContentType maps an image media type to a file extension.
func ExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) == 2 && strings.HasPrefix(parts[0], "image") && parts[1] != "" {
			// Убираем суффиксы типа "+xml" (например, "image/svg+xml")
			return "." + strings.Split(parts[1], "+")[0], nil
		}
		return "", fmt.Errorf("could not determine file extension from content type: '%s'", contentType)
	}
}

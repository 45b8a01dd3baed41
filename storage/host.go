package storage

import "context"

// ImageHost turns uploaded image bytes into a public URL.
type ImageHost interface {
	UploadImage(ctx context.Context, img *DataURI) (string, error)
}

package listing

import (
	"context"
	"io"
)

// ImageStore is the blob-store port for uploaded car images. It is
// implemented by the infrastructure layer (S3-compatible backends and
// an in-memory stub) and injected at the process entry point. Upload is
// all the listing flows need; deletion and existence checks stay on the
// concrete stores for operational tooling.
type ImageStore interface {
	// Upload writes one object and returns its public URL
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

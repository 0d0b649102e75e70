package ingest

import (
	"context"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
)

const gcsPrefix = "gs://"

// Open opens a register source by path. A plain path opens a local file; a
// gs://bucket/object path opens a Cloud Storage object. The caller owns the
// returned closer.
func Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if strings.HasPrefix(path, gcsPrefix) {
		return openGCS(ctx, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open register file", goerr.V("path", path))
	}
	return f, nil
}

// gcsReader closes the object reader and its client together
type gcsReader struct {
	io.ReadCloser
	client *storage.Client
}

func (r *gcsReader) Close() error {
	rErr := r.ReadCloser.Close()
	cErr := r.client.Close()
	if rErr != nil {
		return rErr
	}
	return cErr
}

func openGCS(ctx context.Context, path string) (io.ReadCloser, error) {
	bucket, object, ok := strings.Cut(strings.TrimPrefix(path, gcsPrefix), "/")
	if !ok || bucket == "" || object == "" {
		return nil, goerr.New("invalid GCS path", goerr.V("path", path))
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	reader, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		_ = client.Close()
		return nil, goerr.Wrap(err, "failed to open GCS object",
			goerr.V("bucket", bucket),
			goerr.V("object", object),
		)
	}

	return &gcsReader{ReadCloser: reader, client: client}, nil
}

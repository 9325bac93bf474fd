package archive

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
)

type client struct {
	gcs    *storage.Client
	bucket string
	prefix string
}

// Option is a functional option for client configuration
type Option func(*client)

// WithPrefix puts all archived objects under the given key prefix
func WithPrefix(prefix string) Option {
	return func(c *client) {
		c.prefix = prefix
	}
}

// New creates an archive Service backed by a Cloud Storage bucket
func New(ctx context.Context, bucket string, opts ...Option) (Service, error) {
	if bucket == "" {
		return nil, goerr.New("archive bucket is required")
	}

	gcs, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}

	c := &client{
		gcs:    gcs,
		bucket: bucket,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *client) Store(ctx context.Context, object string, data []byte) error {
	if c.prefix != "" {
		object = c.prefix + "/" + object
	}

	w := c.gcs.Bucket(c.bucket).Object(object).NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write archive object",
			goerr.V("bucket", c.bucket),
			goerr.V("object", object))
	}

	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize archive object",
			goerr.V("bucket", c.bucket),
			goerr.V("object", object))
	}

	return nil
}

func (c *client) Close() error {
	return c.gcs.Close()
}

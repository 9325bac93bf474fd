package config

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/mrm-lab/modelrisk/pkg/service/archive"
)

// Archive holds CLI flags for assessment archival
type Archive struct {
	bucket string
	prefix string
}

func (x *Archive) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "archive-bucket",
			Usage:       "Cloud Storage bucket for assessment snapshots (enables archive-before-delete)",
			Category:    "Archive",
			Sources:     cli.EnvVars("MODELRISK_ARCHIVE_BUCKET"),
			Destination: &x.bucket,
		},
		&cli.StringFlag{
			Name:        "archive-prefix",
			Usage:       "Key prefix for archived objects",
			Category:    "Archive",
			Sources:     cli.EnvVars("MODELRISK_ARCHIVE_PREFIX"),
			Destination: &x.prefix,
		},
	}
}

func (x Archive) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("bucket", x.bucket),
		slog.String("prefix", x.prefix),
	)
}

// IsConfigured checks if archival is configured
func (x *Archive) IsConfigured() bool {
	return x.bucket != ""
}

// Configure creates an archive service, or nil when not configured
func (x *Archive) Configure(ctx context.Context) (archive.Service, error) {
	if !x.IsConfigured() {
		return nil, nil
	}

	var opts []archive.Option
	if x.prefix != "" {
		opts = append(opts, archive.WithPrefix(x.prefix))
	}
	return archive.New(ctx, x.bucket, opts...)
}

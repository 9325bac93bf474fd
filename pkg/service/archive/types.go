package archive

import "context"

// Service stores point-in-time snapshots of assessments before they are
// destroyed, for audit retention.
type Service interface {
	Store(ctx context.Context, object string, data []byte) error
	Close() error
}

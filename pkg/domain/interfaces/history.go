package interfaces

import (
	"context"

	"github.com/mrm-lab/modelrisk/pkg/domain/model"
	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

// HistoryRepository defines the interface for the append-only audit trail
type HistoryRepository interface {
	// Add appends a history entry, assigning an ID when none is set
	Add(ctx context.Context, entry *model.HistoryEntry) (*model.HistoryEntry, error)

	// ListByModel retrieves the model's history entries, newest first
	ListByModel(ctx context.Context, modelID types.ModelID) ([]*model.HistoryEntry, error)
}

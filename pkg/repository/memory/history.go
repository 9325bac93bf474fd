package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mrm-lab/modelrisk/pkg/domain/model"
	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

type historyRepository struct {
	mu      sync.RWMutex
	entries map[types.ModelID][]*model.HistoryEntry
}

func newHistoryRepository() *historyRepository {
	return &historyRepository{
		entries: make(map[types.ModelID][]*model.HistoryEntry),
	}
}

func (r *historyRepository) Add(ctx context.Context, entry *model.HistoryEntry) (*model.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	added := entry.Clone()
	if added.ID == "" {
		added.ID = uuid.NewString()
	}
	if added.CreatedAt.IsZero() {
		added.CreatedAt = time.Now().UTC()
	}

	r.entries[added.ModelID] = append(r.entries[added.ModelID], added)
	return added.Clone(), nil
}

func (r *historyRepository) ListByModel(ctx context.Context, modelID types.ModelID) ([]*model.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket := r.entries[modelID]
	result := make([]*model.HistoryEntry, 0, len(bucket))
	for _, entry := range bucket {
		result = append(result, entry.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

package model

import (
	"time"

	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

// HistoryEntry is one record in the append-only audit trail of a model's
// assessments. Entries are written by the service on every successful save
// and delete; they are rendered by clients, never recomputed.
type HistoryEntry struct {
	ID            string              `json:"id"`
	ModelID       types.ModelID       `json:"model_id"`
	AssessmentID  int64               `json:"assessment_id"`
	Scope         types.Scope         `json:"scope"`
	Action        types.HistoryAction `json:"action"`
	Actor         string              `json:"actor,omitempty"`
	EffectiveTier types.Tier          `json:"effective_tier,omitempty"`
	Changes       []FieldChange       `json:"changes,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// Clone returns a deep copy of the history entry
func (h *HistoryEntry) Clone() *HistoryEntry {
	copied := *h
	if h.Changes != nil {
		copied.Changes = make([]FieldChange, len(h.Changes))
		copy(copied.Changes, h.Changes)
	}
	return &copied
}

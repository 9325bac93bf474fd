package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/mrm-lab/modelrisk/pkg/domain/model"
	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

type fieldChangeDocument struct {
	Field string `firestore:"field"`
	From  string `firestore:"from,omitempty"`
	To    string `firestore:"to,omitempty"`
}

type historyDocument struct {
	ID            string                `firestore:"id"`
	ModelID       string                `firestore:"model_id"`
	AssessmentID  int64                 `firestore:"assessment_id"`
	RegionID      string                `firestore:"region_id,omitempty"`
	Action        string                `firestore:"action"`
	Actor         string                `firestore:"actor,omitempty"`
	EffectiveTier string                `firestore:"effective_tier,omitempty"`
	Changes       []fieldChangeDocument `firestore:"changes,omitempty"`
	CreatedAt     time.Time             `firestore:"created_at"`
}

func toHistoryDocument(h *model.HistoryEntry) *historyDocument {
	doc := &historyDocument{
		ID:            h.ID,
		ModelID:       h.ModelID.String(),
		AssessmentID:  h.AssessmentID,
		RegionID:      h.Scope.RegionID.String(),
		Action:        h.Action.String(),
		Actor:         h.Actor,
		EffectiveTier: h.EffectiveTier.String(),
		CreatedAt:     h.CreatedAt,
	}
	for _, c := range h.Changes {
		doc.Changes = append(doc.Changes, fieldChangeDocument{Field: c.Field, From: c.From, To: c.To})
	}
	return doc
}

func (d *historyDocument) toModel() *model.HistoryEntry {
	entry := &model.HistoryEntry{
		ID:            d.ID,
		ModelID:       types.ModelID(d.ModelID),
		AssessmentID:  d.AssessmentID,
		Scope:         types.Scope{RegionID: types.RegionID(d.RegionID)},
		Action:        types.HistoryAction(d.Action),
		Actor:         d.Actor,
		EffectiveTier: types.Tier(d.EffectiveTier),
		CreatedAt:     d.CreatedAt,
	}
	for _, c := range d.Changes {
		entry.Changes = append(entry.Changes, model.FieldChange{Field: c.Field, From: c.From, To: c.To})
	}
	return entry
}

type historyRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newHistoryRepository(client *firestore.Client) *historyRepository {
	return &historyRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *historyRepository) historyCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_assessment_history"
	}
	return "assessment_history"
}

func (r *historyRepository) Add(ctx context.Context, entry *model.HistoryEntry) (*model.HistoryEntry, error) {
	added := entry.Clone()
	if added.ID == "" {
		added.ID = uuid.NewString()
	}
	if added.CreatedAt.IsZero() {
		added.CreatedAt = time.Now().UTC()
	}

	docRef := r.client.Collection(r.historyCollection()).Doc(added.ID)
	if _, err := docRef.Set(ctx, toHistoryDocument(added)); err != nil {
		return nil, goerr.Wrap(err, "failed to add history entry",
			goerr.V("model_id", added.ModelID),
			goerr.V("id", added.ID))
	}

	return added, nil
}

func (r *historyRepository) ListByModel(ctx context.Context, modelID types.ModelID) ([]*model.HistoryEntry, error) {
	// Requires the composite index managed by the migrate command
	iter := r.client.Collection(r.historyCollection()).
		Where("model_id", "==", modelID.String()).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var entries []*model.HistoryEntry
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate history entries", goerr.V("model_id", modelID))
		}

		var historyDoc historyDocument
		if err := doc.DataTo(&historyDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal history entry")
		}

		entries = append(entries, historyDoc.toModel())
	}

	return entries, nil
}

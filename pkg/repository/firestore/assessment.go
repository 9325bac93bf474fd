package firestore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mrm-lab/modelrisk/pkg/domain/model"
	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

type factorRatingDocument struct {
	FactorID string `firestore:"factor_id"`
	Rating   string `firestore:"rating,omitempty"`
	Comment  string `firestore:"comment,omitempty"`
}

type assessmentDocument struct {
	ID       int64  `firestore:"id"`
	ModelID  string `firestore:"model_id"`
	RegionID string `firestore:"region_id,omitempty"`
	// ScopeKey duplicates the scope for the uniqueness query
	ScopeKey string `firestore:"scope_key"`

	Quantitative        string `firestore:"quantitative_rating,omitempty"`
	QuantitativeComment string `firestore:"quantitative_comment,omitempty"`

	QuantitativeOverride        string `firestore:"quantitative_override,omitempty"`
	QuantitativeOverrideComment string `firestore:"quantitative_override_comment,omitempty"`

	QualitativeOverride        string `firestore:"qualitative_override,omitempty"`
	QualitativeOverrideComment string `firestore:"qualitative_override_comment,omitempty"`

	TierOverride        string `firestore:"derived_tier_override,omitempty"`
	TierOverrideComment string `firestore:"derived_tier_override_comment,omitempty"`

	FactorRatings []factorRatingDocument `firestore:"factor_ratings,omitempty"`

	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func toAssessmentDocument(a *model.Assessment) *assessmentDocument {
	doc := &assessmentDocument{
		ID:                          a.ID,
		ModelID:                     a.ModelID.String(),
		RegionID:                    a.Scope.RegionID.String(),
		ScopeKey:                    a.Scope.Key(),
		Quantitative:                a.Quantitative.String(),
		QuantitativeComment:         a.QuantitativeComment,
		QuantitativeOverride:        a.QuantitativeOverride.String(),
		QuantitativeOverrideComment: a.QuantitativeOverrideComment,
		QualitativeOverride:         a.QualitativeOverride.String(),
		QualitativeOverrideComment:  a.QualitativeOverrideComment,
		TierOverride:                a.TierOverride.String(),
		TierOverrideComment:         a.TierOverrideComment,
		CreatedAt:                   a.CreatedAt,
		UpdatedAt:                   a.UpdatedAt,
	}
	for _, fr := range a.FactorRatings {
		doc.FactorRatings = append(doc.FactorRatings, factorRatingDocument{
			FactorID: fr.FactorID.String(),
			Rating:   fr.Rating.String(),
			Comment:  fr.Comment,
		})
	}
	return doc
}

func (d *assessmentDocument) toModel() *model.Assessment {
	a := &model.Assessment{
		ID:                          d.ID,
		ModelID:                     types.ModelID(d.ModelID),
		Scope:                       types.Scope{RegionID: types.RegionID(d.RegionID)},
		Quantitative:                types.Rating(d.Quantitative),
		QuantitativeComment:         d.QuantitativeComment,
		QuantitativeOverride:        types.Rating(d.QuantitativeOverride),
		QuantitativeOverrideComment: d.QuantitativeOverrideComment,
		QualitativeOverride:         types.Rating(d.QualitativeOverride),
		QualitativeOverrideComment:  d.QualitativeOverrideComment,
		TierOverride:                types.Tier(d.TierOverride),
		TierOverrideComment:         d.TierOverrideComment,
		CreatedAt:                   d.CreatedAt,
		UpdatedAt:                   d.UpdatedAt,
	}
	for _, fr := range d.FactorRatings {
		a.FactorRatings = append(a.FactorRatings, model.FactorRating{
			FactorID: types.FactorID(fr.FactorID),
			Rating:   types.Rating(fr.Rating),
			Comment:  fr.Comment,
		})
	}
	return a
}

type assessmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAssessmentRepository(client *firestore.Client) *assessmentRepository {
	return &assessmentRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *assessmentRepository) assessmentsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_assessments"
	}
	return "assessments"
}

func (r *assessmentRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *assessmentRepository) assessmentCounterDoc() string {
	return "assessment_counter"
}

func (r *assessmentRepository) getNextID(ctx context.Context) (int64, error) {
	counterRef := r.client.Collection(r.counterCollection()).Doc(r.assessmentCounterDoc())

	var nextID int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				nextID = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": nextID,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		currentValue, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		nextID = currentValue.(int64) + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: nextID},
		})
	})

	if err != nil {
		return 0, goerr.Wrap(err, "failed to get next ID")
	}

	return nextID, nil
}

func (r *assessmentRepository) Create(ctx context.Context, a *model.Assessment) (*model.Assessment, error) {
	// Scope uniqueness check. Not transactional with the write; the gap
	// is accepted, consistency with concurrent editors is the backend's
	// responsibility.
	existing, err := r.GetByScope(ctx, a.ModelID, a.Scope)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, goerr.Wrap(ErrScopeConflict, "assessment already exists for scope",
			goerr.V("model_id", a.ModelID),
			goerr.V("scope", a.Scope.Key()))
	}

	id, err := r.getNextID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := a.Clone()
	created.ID = id
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.assessmentsCollection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, toAssessmentDocument(created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create assessment")
	}

	return created, nil
}

func (r *assessmentRepository) Get(ctx context.Context, modelID types.ModelID, id int64) (*model.Assessment, error) {
	docRef := r.client.Collection(r.assessmentsCollection()).Doc(fmt.Sprintf("%d", id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "assessment not found",
				goerr.V("model_id", modelID),
				goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V("id", id))
	}

	var assessmentDoc assessmentDocument
	if err := doc.DataTo(&assessmentDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal assessment", goerr.V("id", id))
	}

	if assessmentDoc.ModelID != modelID.String() {
		return nil, goerr.Wrap(ErrNotFound, "assessment not found",
			goerr.V("model_id", modelID),
			goerr.V("id", id))
	}

	return assessmentDoc.toModel(), nil
}

func (r *assessmentRepository) GetByScope(ctx context.Context, modelID types.ModelID, scope types.Scope) (*model.Assessment, error) {
	iter := r.client.Collection(r.assessmentsCollection()).
		Where("model_id", "==", modelID.String()).
		Where("scope_key", "==", scope.Key()).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query assessment by scope",
			goerr.V("model_id", modelID),
			goerr.V("scope", scope.Key()))
	}

	var assessmentDoc assessmentDocument
	if err := doc.DataTo(&assessmentDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal assessment")
	}

	return assessmentDoc.toModel(), nil
}

func (r *assessmentRepository) ListByModel(ctx context.Context, modelID types.ModelID) ([]*model.Assessment, error) {
	iter := r.client.Collection(r.assessmentsCollection()).
		Where("model_id", "==", modelID.String()).
		Documents(ctx)
	defer iter.Stop()

	var assessments []*model.Assessment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assessments", goerr.V("model_id", modelID))
		}

		var assessmentDoc assessmentDocument
		if err := doc.DataTo(&assessmentDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal assessment")
		}

		assessments = append(assessments, assessmentDoc.toModel())
	}

	sort.Slice(assessments, func(i, j int) bool {
		if assessments[i].Scope.IsGlobal() != assessments[j].Scope.IsGlobal() {
			return assessments[i].Scope.IsGlobal()
		}
		return assessments[i].Scope.RegionID < assessments[j].Scope.RegionID
	})

	return assessments, nil
}

func (r *assessmentRepository) ListAll(ctx context.Context) ([]*model.Assessment, error) {
	iter := r.client.Collection(r.assessmentsCollection()).Documents(ctx)
	defer iter.Stop()

	var assessments []*model.Assessment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assessments")
		}

		var assessmentDoc assessmentDocument
		if err := doc.DataTo(&assessmentDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal assessment")
		}

		assessments = append(assessments, assessmentDoc.toModel())
	}

	return assessments, nil
}

func (r *assessmentRepository) Update(ctx context.Context, a *model.Assessment) (*model.Assessment, error) {
	existing, err := r.Get(ctx, a.ModelID, a.ID)
	if err != nil {
		return nil, err
	}

	updated := a.Clone()
	updated.Scope = existing.Scope
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	docRef := r.client.Collection(r.assessmentsCollection()).Doc(fmt.Sprintf("%d", a.ID))
	if _, err := docRef.Set(ctx, toAssessmentDocument(updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update assessment", goerr.V("id", a.ID))
	}

	return updated, nil
}

func (r *assessmentRepository) Delete(ctx context.Context, modelID types.ModelID, id int64) error {
	if _, err := r.Get(ctx, modelID, id); err != nil {
		return err
	}

	docRef := r.client.Collection(r.assessmentsCollection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete assessment", goerr.V("id", id))
	}

	return nil
}

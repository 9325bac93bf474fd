package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/mrm-lab/modelrisk/pkg/domain/model"
	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

type assessmentRepository struct {
	mu          sync.RWMutex
	assessments map[types.ModelID]map[int64]*model.Assessment
	nextID      int64
}

func newAssessmentRepository() *assessmentRepository {
	return &assessmentRepository{
		assessments: make(map[types.ModelID]map[int64]*model.Assessment),
		nextID:      1,
	}
}

func (r *assessmentRepository) Create(ctx context.Context, a *model.Assessment) (*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.assessments[a.ModelID]
	if !exists {
		bucket = make(map[int64]*model.Assessment)
		r.assessments[a.ModelID] = bucket
	}

	for _, existing := range bucket {
		if existing.Scope.Key() == a.Scope.Key() {
			return nil, goerr.Wrap(ErrScopeConflict, "assessment already exists for scope",
				goerr.V("model_id", a.ModelID),
				goerr.V("scope", a.Scope.Key()))
		}
	}

	now := time.Now().UTC()
	created := a.Clone()
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	bucket[created.ID] = created
	return created.Clone(), nil
}

func (r *assessmentRepository) Get(ctx context.Context, modelID types.ModelID, id int64) (*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, exists := r.assessments[modelID][id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assessment not found",
			goerr.V("model_id", modelID),
			goerr.V("id", id))
	}

	return a.Clone(), nil
}

func (r *assessmentRepository) GetByScope(ctx context.Context, modelID types.ModelID, scope types.Scope) (*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.assessments[modelID] {
		if a.Scope.Key() == scope.Key() {
			return a.Clone(), nil
		}
	}

	return nil, nil
}

func (r *assessmentRepository) ListByModel(ctx context.Context, modelID types.ModelID) ([]*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Assessment, 0, len(r.assessments[modelID]))
	for _, a := range r.assessments[modelID] {
		result = append(result, a.Clone())
	}

	sortAssessments(result)
	return result, nil
}

func (r *assessmentRepository) ListAll(ctx context.Context) ([]*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Assessment
	for _, bucket := range r.assessments {
		for _, a := range bucket {
			result = append(result, a.Clone())
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].ModelID != result[j].ModelID {
			return result[i].ModelID < result[j].ModelID
		}
		return result[i].Scope.Key() < result[j].Scope.Key()
	})
	return result, nil
}

func (r *assessmentRepository) Update(ctx context.Context, a *model.Assessment) (*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.assessments[a.ModelID][a.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assessment not found",
			goerr.V("model_id", a.ModelID),
			goerr.V("id", a.ID))
	}

	updated := a.Clone()
	updated.Scope = existing.Scope
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.assessments[a.ModelID][a.ID] = updated
	return updated.Clone(), nil
}

func (r *assessmentRepository) Delete(ctx context.Context, modelID types.ModelID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assessments[modelID][id]; !exists {
		return goerr.Wrap(ErrNotFound, "assessment not found",
			goerr.V("model_id", modelID),
			goerr.V("id", id))
	}

	delete(r.assessments[modelID], id)
	return nil
}

// sortAssessments orders a model's assessments global scope first, then by
// region ID.
func sortAssessments(assessments []*model.Assessment) {
	sort.Slice(assessments, func(i, j int) bool {
		if assessments[i].Scope.IsGlobal() != assessments[j].Scope.IsGlobal() {
			return assessments[i].Scope.IsGlobal()
		}
		return assessments[i].Scope.RegionID < assessments[j].Scope.RegionID
	})
}

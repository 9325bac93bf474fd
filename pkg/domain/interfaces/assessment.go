package interfaces

import (
	"context"

	"github.com/mrm-lab/modelrisk/pkg/domain/model"
	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

// AssessmentRepository defines the interface for Assessment data access
type AssessmentRepository interface {
	// Create creates a new assessment with auto-generated ID. It fails if
	// an assessment already exists for the same (model, scope) pair.
	Create(ctx context.Context, a *model.Assessment) (*model.Assessment, error)

	// Get retrieves an assessment of the model by ID
	Get(ctx context.Context, modelID types.ModelID, id int64) (*model.Assessment, error)

	// GetByScope retrieves the model's assessment for one scope.
	// Returns nil, nil if no assessment exists for the scope.
	GetByScope(ctx context.Context, modelID types.ModelID, scope types.Scope) (*model.Assessment, error)

	// ListByModel retrieves all assessments of a model, global scope first
	ListByModel(ctx context.Context, modelID types.ModelID) ([]*model.Assessment, error)

	// ListAll retrieves every assessment. Intended for admin tooling such
	// as the consistency check, not for request serving.
	ListAll(ctx context.Context) ([]*model.Assessment, error)

	// Update updates an existing assessment
	Update(ctx context.Context, a *model.Assessment) (*model.Assessment, error)

	// Delete deletes an assessment of the model by ID
	Delete(ctx context.Context, modelID types.ModelID, id int64) error
}

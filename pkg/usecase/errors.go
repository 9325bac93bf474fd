package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrAssessmentNotFound = errors.New("assessment not found")

	// Conflict errors
	ErrScopeAlreadyAssessed = errors.New("an assessment already exists for this scope")

	// Access control errors
	ErrPermissionDenied = errors.New("permission denied")
)

// Context keys for error values
const (
	ModelIDKey      = "model_id"
	AssessmentIDKey = "assessment_id"
)

package workflow

import (
	"context"

	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

// Service queries the validation workflow system for work that a tier
// change would disrupt.
type Service interface {
	CheckOpenValidations(ctx context.Context, modelID types.ModelID, proposed types.Tier) (*CheckResult, error)
}

// OpenValidation is a validation request that is still in flight for a model.
type OpenValidation struct {
	RequestID        string `json:"request_id"`
	ValidationType   string `json:"validation_type"`
	CurrentStatus    string `json:"current_status"`
	PrimaryValidator string `json:"primary_validator,omitempty"`
}

// CheckResult is the workflow system's answer for a proposed tier change.
type CheckResult struct {
	HasOpenValidations bool             `json:"has_open_validations"`
	OpenValidations    []OpenValidation `json:"open_validations,omitempty"`
	WarningMessage     string           `json:"warning_message,omitempty"`
}

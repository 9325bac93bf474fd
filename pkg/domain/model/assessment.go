package model

import (
	"time"

	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

// FactorRating is one analyst rating of a qualitative factor within an
// assessment. An unset rating means the factor has not been rated yet and
// is excluded from the qualitative score.
type FactorRating struct {
	FactorID types.FactorID `json:"factor_id"`
	Rating   types.Rating   `json:"rating,omitempty"`
	Comment  string         `json:"comment,omitempty"`
}

// Assessment is an inherent risk assessment of a model for one scope
// (global or a single region). At most one assessment exists per
// (model, scope) pair.
type Assessment struct {
	ID      int64         `json:"id"`
	ModelID types.ModelID `json:"model_id"`
	Scope   types.Scope   `json:"scope"`

	Quantitative        types.Rating `json:"quantitative_rating,omitempty"`
	QuantitativeComment string       `json:"quantitative_comment,omitempty"`

	QuantitativeOverride        types.Rating `json:"quantitative_override,omitempty"`
	QuantitativeOverrideComment string       `json:"quantitative_override_comment,omitempty"`

	QualitativeOverride        types.Rating `json:"qualitative_override,omitempty"`
	QualitativeOverrideComment string       `json:"qualitative_override_comment,omitempty"`

	TierOverride        types.Tier `json:"derived_tier_override,omitempty"`
	TierOverrideComment string     `json:"derived_tier_override_comment,omitempty"`

	FactorRatings []FactorRating `json:"factor_ratings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy of the assessment
func (a *Assessment) Clone() *Assessment {
	copied := *a
	if a.FactorRatings != nil {
		copied.FactorRatings = make([]FactorRating, len(a.FactorRatings))
		copy(copied.FactorRatings, a.FactorRatings)
	}
	return &copied
}

package model

import (
	"sort"

	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

// FieldChange records one field-level difference between two assessment
// snapshots, in string form for the audit trail.
type FieldChange struct {
	Field string `json:"field"`
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
}

// DiffAssessments compares two assessment snapshots field by field and
// returns the changes, ordered by field name. Identity and timestamp fields
// are ignored. An empty result means the snapshots are equivalent.
func DiffAssessments(before, after *Assessment) []FieldChange {
	var changes []FieldChange

	add := func(field, from, to string) {
		if from != to {
			changes = append(changes, FieldChange{Field: field, From: from, To: to})
		}
	}

	add("quantitative_rating", before.Quantitative.String(), after.Quantitative.String())
	add("quantitative_comment", before.QuantitativeComment, after.QuantitativeComment)
	add("quantitative_override", before.QuantitativeOverride.String(), after.QuantitativeOverride.String())
	add("quantitative_override_comment", before.QuantitativeOverrideComment, after.QuantitativeOverrideComment)
	add("qualitative_override", before.QualitativeOverride.String(), after.QualitativeOverride.String())
	add("qualitative_override_comment", before.QualitativeOverrideComment, after.QualitativeOverrideComment)
	add("derived_tier_override", before.TierOverride.String(), after.TierOverride.String())
	add("derived_tier_override_comment", before.TierOverrideComment, after.TierOverrideComment)

	changes = append(changes, diffFactorRatings(before.FactorRatings, after.FactorRatings)...)

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Field < changes[j].Field
	})

	return changes
}

func diffFactorRatings(before, after []FactorRating) []FieldChange {
	type entry struct {
		rating  types.Rating
		comment string
	}

	beforeByID := make(map[types.FactorID]entry, len(before))
	for _, fr := range before {
		beforeByID[fr.FactorID] = entry{rating: fr.Rating, comment: fr.Comment}
	}
	afterByID := make(map[types.FactorID]entry, len(after))
	for _, fr := range after {
		afterByID[fr.FactorID] = entry{rating: fr.Rating, comment: fr.Comment}
	}

	ids := make(map[types.FactorID]struct{}, len(beforeByID)+len(afterByID))
	for id := range beforeByID {
		ids[id] = struct{}{}
	}
	for id := range afterByID {
		ids[id] = struct{}{}
	}

	var changes []FieldChange
	for id := range ids {
		b := beforeByID[id]
		a := afterByID[id]
		if b.rating != a.rating {
			changes = append(changes, FieldChange{
				Field: "factor:" + id.String(),
				From:  b.rating.String(),
				To:    a.rating.String(),
			})
		}
		if b.comment != a.comment {
			changes = append(changes, FieldChange{
				Field: "factor_comment:" + id.String(),
				From:  b.comment,
				To:    a.comment,
			})
		}
	}

	return changes
}

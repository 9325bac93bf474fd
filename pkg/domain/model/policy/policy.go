package policy

import (
	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

// Factor is a qualitative risk factor definition. Factors are reference
// data loaded from the risk policy configuration and immutable at runtime.
type Factor struct {
	ID          types.FactorID `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Weight      float64        `json:"weight"`
}

// Region is a region available for regional assessment scopes
type Region struct {
	ID   types.RegionID `json:"id"`
	Name string         `json:"name"`
}

// Policy holds the risk policy reference data the assessment engine runs
// against: the qualitative factor catalog and the known regions.
type Policy struct {
	Factors []Factor `json:"factors"`
	Regions []Region `json:"regions"`
}

// FactorByID returns the factor with the given ID, if present
func (p *Policy) FactorByID(id types.FactorID) (*Factor, bool) {
	for i := range p.Factors {
		if p.Factors[i].ID == id {
			return &p.Factors[i], true
		}
	}
	return nil, false
}

// HasRegion reports whether the region is part of the policy
func (p *Policy) HasRegion(id types.RegionID) bool {
	for _, r := range p.Regions {
		if r.ID == id {
			return true
		}
	}
	return false
}

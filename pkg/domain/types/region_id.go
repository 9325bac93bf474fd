package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// RegionID represents a unique identifier for a region
type RegionID string

// Validate checks if the RegionID is valid
func (r RegionID) Validate() error {
	if r == "" {
		return goerr.New("region ID cannot be empty")
	}
	if !idPattern.MatchString(string(r)) {
		return goerr.New("region ID must be lowercase alphanumeric with hyphens", goerr.V("id", r))
	}
	return nil
}

// String returns the string representation of RegionID
func (r RegionID) String() string {
	return string(r)
}

package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// ModelID represents a unique identifier for a model in the catalog
type ModelID string

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks if the ModelID is valid
func (m ModelID) Validate() error {
	if m == "" {
		return goerr.New("model ID cannot be empty")
	}
	if !idPattern.MatchString(string(m)) {
		return goerr.New("model ID must be lowercase alphanumeric with hyphens", goerr.V("id", m))
	}
	return nil
}

// String returns the string representation of ModelID
func (m ModelID) String() string {
	return string(m)
}

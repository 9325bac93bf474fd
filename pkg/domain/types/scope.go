package types

// Scope is the applicability of an assessment: the whole model (global) or
// a single region. The zero value is the global scope.
type Scope struct {
	RegionID RegionID `json:"region_id,omitempty" firestore:"region_id,omitempty"`
}

// GlobalScope returns the global (non-regional) scope
func GlobalScope() Scope {
	return Scope{}
}

// RegionScope returns a scope bound to the given region
func RegionScope(id RegionID) Scope {
	return Scope{RegionID: id}
}

// IsGlobal reports whether the scope covers the whole model
func (s Scope) IsGlobal() bool {
	return s.RegionID == ""
}

// Key returns a stable string key for the scope, used to enforce the
// one-assessment-per-scope invariant in repositories.
func (s Scope) Key() string {
	if s.IsGlobal() {
		return "global"
	}
	return "region:" + s.RegionID.String()
}

// Validate checks if the scope is valid
func (s Scope) Validate() error {
	if s.IsGlobal() {
		return nil
	}
	return s.RegionID.Validate()
}

// String returns a human-readable representation of the scope
func (s Scope) String() string {
	return s.Key()
}

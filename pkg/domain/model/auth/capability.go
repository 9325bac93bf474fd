package auth

// Capability names as they appear in session token claims
const (
	CapManageModels               = "can_manage_models"
	CapManageAssessments          = "can_manage_assessments"
	CapManageConditionalApprovals = "can_manage_conditional_approvals"
	CapViewReports                = "can_view_reports"
)

// Capabilities is the capability set resolved once per session and passed
// explicitly to the code that needs it. Conditional behavior keys off these
// flags, never off the raw token.
type Capabilities struct {
	CanManageModels               bool `json:"can_manage_models"`
	CanManageAssessments          bool `json:"can_manage_assessments"`
	CanManageConditionalApprovals bool `json:"can_manage_conditional_approvals"`
	CanViewReports                bool `json:"can_view_reports"`
}

// CapabilitiesFromNames builds a capability set from claim names. Unknown
// names are ignored.
func CapabilitiesFromNames(names []string) Capabilities {
	var caps Capabilities
	for _, name := range names {
		switch name {
		case CapManageModels:
			caps.CanManageModels = true
		case CapManageAssessments:
			caps.CanManageAssessments = true
		case CapManageConditionalApprovals:
			caps.CanManageConditionalApprovals = true
		case CapViewReports:
			caps.CanViewReports = true
		}
	}
	return caps
}

// AllCapabilities returns a capability set with every flag enabled
func AllCapabilities() Capabilities {
	return Capabilities{
		CanManageModels:               true,
		CanManageAssessments:          true,
		CanManageConditionalApprovals: true,
		CanViewReports:                true,
	}
}

// Names returns the claim names of the enabled capabilities
func (c Capabilities) Names() []string {
	var names []string
	if c.CanManageModels {
		names = append(names, CapManageModels)
	}
	if c.CanManageAssessments {
		names = append(names, CapManageAssessments)
	}
	if c.CanManageConditionalApprovals {
		names = append(names, CapManageConditionalApprovals)
	}
	if c.CanViewReports {
		names = append(names, CapViewReports)
	}
	return names
}

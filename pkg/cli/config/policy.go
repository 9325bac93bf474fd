package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/mrm-lab/modelrisk/pkg/domain/model/policy"
	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

// PolicyConfig represents the risk policy configuration file
type PolicyConfig struct {
	Factors []FactorConfig `toml:"factor"`
	Regions []RegionConfig `toml:"region"`
}

// FactorConfig represents a qualitative factor configuration
type FactorConfig struct {
	ID          string  `toml:"id"`
	Name        string  `toml:"name"`
	Description string  `toml:"description"`
	Weight      float64 `toml:"weight"`
}

// Validate checks if the FactorConfig is valid
func (f *FactorConfig) Validate() error {
	id := types.FactorID(f.ID)
	if err := id.Validate(); err != nil {
		return goerr.Wrap(err, "invalid factor ID")
	}
	if f.Name == "" {
		return goerr.Wrap(ErrMissingName, "factor name is required", goerr.V(FactorIDKey, f.ID))
	}
	if f.Weight <= 0 || f.Weight > 1 {
		return goerr.New("factor weight must be in (0, 1]", goerr.V(FactorIDKey, f.ID), goerr.V("weight", f.Weight))
	}
	return nil
}

// RegionConfig represents a region configuration
type RegionConfig struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// Validate checks if the RegionConfig is valid
func (r *RegionConfig) Validate() error {
	id := types.RegionID(r.ID)
	if err := id.Validate(); err != nil {
		return goerr.Wrap(err, "invalid region ID")
	}
	if r.Name == "" {
		return goerr.Wrap(ErrMissingName, "region name is required", goerr.V(RegionIDKey, r.ID))
	}
	return nil
}

// Validate checks if the PolicyConfig is valid
func (p *PolicyConfig) Validate() error {
	if len(p.Factors) == 0 {
		return goerr.Wrap(ErrInvalidConfig, "at least one factor is required")
	}

	factorIDs := make(map[string]bool)
	for _, f := range p.Factors {
		if err := f.Validate(); err != nil {
			return goerr.Wrap(err, "invalid factor")
		}
		if factorIDs[f.ID] {
			return goerr.Wrap(ErrDuplicateFactorID, "duplicate factor ID", goerr.V(FactorIDKey, f.ID))
		}
		factorIDs[f.ID] = true
	}

	regionIDs := make(map[string]bool)
	for _, r := range p.Regions {
		if err := r.Validate(); err != nil {
			return goerr.Wrap(err, "invalid region")
		}
		if regionIDs[r.ID] {
			return goerr.Wrap(ErrDuplicateRegionID, "duplicate region ID", goerr.V(RegionIDKey, r.ID))
		}
		regionIDs[r.ID] = true
	}

	return nil
}

// LoadPolicyConfiguration loads the risk policy from a TOML file
func LoadPolicyConfiguration(path string) (*PolicyConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read policy file", goerr.V(ConfigPathKey, path))
	}

	var config PolicyConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML policy", goerr.V(ConfigPathKey, path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "policy validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}

// ToDomainPolicy converts PolicyConfig to the domain policy
func (p *PolicyConfig) ToDomainPolicy() *policy.Policy {
	factors := make([]policy.Factor, len(p.Factors))
	for i, f := range p.Factors {
		factors[i] = policy.Factor{
			ID:          types.FactorID(f.ID),
			Name:        f.Name,
			Description: f.Description,
			Weight:      f.Weight,
		}
	}

	regions := make([]policy.Region, len(p.Regions))
	for i, r := range p.Regions {
		regions[i] = policy.Region{
			ID:   types.RegionID(r.ID),
			Name: r.Name,
		}
	}

	return &policy.Policy{
		Factors: factors,
		Regions: regions,
	}
}

// Policy holds the CLI flag for the risk policy file
type Policy struct {
	path string
}

// Flags returns CLI flags for policy configuration
func (x *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "risk-policy",
			Usage:       "Path to the risk policy TOML file (factors and regions)",
			Required:    true,
			Sources:     cli.EnvVars("MODELRISK_RISK_POLICY"),
			Destination: &x.path,
		},
	}
}

// Path returns the configured policy file path
func (x *Policy) Path() string {
	return x.path
}

// Configure loads and validates the policy file
func (x *Policy) Configure() (*policy.Policy, error) {
	cfg, err := LoadPolicyConfiguration(x.path)
	if err != nil {
		return nil, err
	}
	return cfg.ToDomainPolicy(), nil
}

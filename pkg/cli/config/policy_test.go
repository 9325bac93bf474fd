package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/mrm-lab/modelrisk/pkg/cli/config"
	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

func writePolicyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestLoadPolicyConfiguration(t *testing.T) {
	t.Run("valid policy", func(t *testing.T) {
		path := writePolicyFile(t, `
[[factor]]
id = "complexity"
name = "Model Complexity"
description = "Methodology and implementation complexity"
weight = 0.4

[[factor]]
id = "data-quality"
name = "Data Quality"
weight = 0.6

[[region]]
id = "emea"
name = "EMEA"

[[region]]
id = "apac"
name = "APAC"
`)

		cfg, err := config.LoadPolicyConfiguration(path)
		gt.NoError(t, err).Required()
		gt.Array(t, cfg.Factors).Length(2)
		gt.Array(t, cfg.Regions).Length(2)

		p := cfg.ToDomainPolicy()
		gt.Value(t, p.Factors[0].ID).Equal(types.FactorID("complexity"))
		gt.Value(t, p.Factors[0].Weight).Equal(0.4)
		gt.Value(t, p.HasRegion("emea")).Equal(true)
		gt.Value(t, p.HasRegion("amer")).Equal(false)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadPolicyConfiguration(filepath.Join(t.TempDir(), "nope.toml"))
		gt.Error(t, err)
	})

	t.Run("malformed TOML", func(t *testing.T) {
		path := writePolicyFile(t, `[[factor]`)
		_, err := config.LoadPolicyConfiguration(path)
		gt.Error(t, err)
	})

	t.Run("no factors", func(t *testing.T) {
		path := writePolicyFile(t, `
[[region]]
id = "emea"
name = "EMEA"
`)
		_, err := config.LoadPolicyConfiguration(path)
		gt.Value(t, errors.Is(err, config.ErrInvalidConfig)).Equal(true)
	})

	t.Run("weight out of range", func(t *testing.T) {
		for _, weight := range []string{"0.0", "1.5", "-0.2"} {
			path := writePolicyFile(t, `
[[factor]]
id = "complexity"
name = "Model Complexity"
weight = `+weight+"\n")
			_, err := config.LoadPolicyConfiguration(path)
			gt.Error(t, err)
		}
	})

	t.Run("duplicate factor ID", func(t *testing.T) {
		path := writePolicyFile(t, `
[[factor]]
id = "complexity"
name = "Model Complexity"
weight = 0.5

[[factor]]
id = "complexity"
name = "Complexity Again"
weight = 0.5
`)
		_, err := config.LoadPolicyConfiguration(path)
		gt.Value(t, errors.Is(err, config.ErrDuplicateFactorID)).Equal(true)
	})

	t.Run("duplicate region ID", func(t *testing.T) {
		path := writePolicyFile(t, `
[[factor]]
id = "complexity"
name = "Model Complexity"
weight = 0.5

[[region]]
id = "emea"
name = "EMEA"

[[region]]
id = "emea"
name = "Europe"
`)
		_, err := config.LoadPolicyConfiguration(path)
		gt.Value(t, errors.Is(err, config.ErrDuplicateRegionID)).Equal(true)
	})

	t.Run("missing names", func(t *testing.T) {
		path := writePolicyFile(t, `
[[factor]]
id = "complexity"
weight = 0.5
`)
		_, err := config.LoadPolicyConfiguration(path)
		gt.Value(t, errors.Is(err, config.ErrMissingName)).Equal(true)
	})

	t.Run("invalid IDs", func(t *testing.T) {
		path := writePolicyFile(t, `
[[factor]]
id = "Complexity"
name = "Model Complexity"
weight = 0.5
`)
		_, err := config.LoadPolicyConfiguration(path)
		gt.Error(t, err)
	})
}

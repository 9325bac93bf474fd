package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/mrm-lab/modelrisk/pkg/cli/config"
	"github.com/mrm-lab/modelrisk/pkg/domain/model"
	"github.com/mrm-lab/modelrisk/pkg/domain/model/policy"
	"github.com/mrm-lab/modelrisk/pkg/utils/logging"
)

const scanConcurrency = 8

type finding struct {
	modelID      string
	assessmentID int64
	message      string
}

func cmdValidate() *cli.Command {
	var policyCfg config.Policy
	var repoCfg config.Repository
	var scan bool

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "scan",
			Usage:       "Also scan stored assessments for inconsistencies with the policy",
			Destination: &scan,
		},
	}
	flags = append(flags, policyCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the risk policy file and optionally scan stored assessments",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			riskPolicy, err := policyCfg.Configure()
			if err != nil {
				color.Red("✗ %s: %s", policyCfg.Path(), err)
				return err
			}

			color.Green("✓ %s: %d factors, %d regions", policyCfg.Path(), len(riskPolicy.Factors), len(riskPolicy.Regions))

			if !scan {
				return nil
			}

			return scanAssessments(ctx, &repoCfg, riskPolicy)
		},
	}
}

// scanAssessments checks every stored assessment against the policy. Stale
// factor ratings and invariant violations are reported but nothing is
// modified.
func scanAssessments(ctx context.Context, repoCfg *config.Repository, riskPolicy *policy.Policy) error {
	repo, err := repoCfg.Configure(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to initialize repository")
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logging.Default().Error("failed to close repository", "error", err.Error())
		}
	}()

	assessments, err := repo.Assessment().ListAll(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list assessments")
	}

	var mu sync.Mutex
	var findings []finding

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(scanConcurrency)

	for _, a := range assessments {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			var local []finding

			for _, id := range model.UnknownFactorRatings(a, riskPolicy) {
				local = append(local, finding{
					modelID:      a.ModelID.String(),
					assessmentID: a.ID,
					message:      fmt.Sprintf("rating for unknown factor %q", id),
				})
			}

			for _, v := range model.ValidateAssessment(a, riskPolicy.Factors) {
				local = append(local, finding{
					modelID:      a.ModelID.String(),
					assessmentID: a.ID,
					message:      v.Message,
				})
			}

			if len(local) > 0 {
				mu.Lock()
				findings = append(findings, local...)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return goerr.Wrap(err, "assessment scan failed")
	}

	if len(findings) == 0 {
		color.Green("✓ %d assessments scanned, no inconsistencies", len(assessments))
		return nil
	}

	for _, f := range findings {
		color.Yellow("! %s/%d: %s", f.modelID, f.assessmentID, f.message)
	}
	return goerr.New("assessment scan found inconsistencies",
		goerr.V("assessments", len(assessments)),
		goerr.V("findings", len(findings)))
}

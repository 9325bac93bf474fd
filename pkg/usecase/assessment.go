package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/mrm-lab/modelrisk/pkg/domain/interfaces"
	"github.com/mrm-lab/modelrisk/pkg/domain/model"
	"github.com/mrm-lab/modelrisk/pkg/domain/model/auth"
	"github.com/mrm-lab/modelrisk/pkg/domain/model/policy"
	"github.com/mrm-lab/modelrisk/pkg/domain/types"
	"github.com/mrm-lab/modelrisk/pkg/service/archive"
	"github.com/mrm-lab/modelrisk/pkg/service/notify"
	"github.com/mrm-lab/modelrisk/pkg/service/workflow"
	"github.com/mrm-lab/modelrisk/pkg/utils/async"
	"github.com/mrm-lab/modelrisk/pkg/utils/errutil"
	"github.com/mrm-lab/modelrisk/pkg/utils/logging"
)

type AssessmentUseCase struct {
	repo     interfaces.Repository
	policy   *policy.Policy
	workflow workflow.Service
	notifier notify.Service
	archive  archive.Service
}

func NewAssessmentUseCase(repo interfaces.Repository, p *policy.Policy, wf workflow.Service, n notify.Service, ar archive.Service) *AssessmentUseCase {
	return &AssessmentUseCase{
		repo:     repo,
		policy:   p,
		workflow: wf,
		notifier: n,
		archive:  ar,
	}
}

// SaveInput carries everything a create or update needs. AssessmentID zero
// means create; Scope is only honored on create and immutable afterwards.
type SaveInput struct {
	ModelID      types.ModelID
	AssessmentID int64
	Scope        types.Scope

	Quantitative        types.Rating
	QuantitativeComment string

	QuantitativeOverride        types.Rating
	QuantitativeOverrideComment string

	QualitativeOverride        types.Rating
	QualitativeOverrideComment string

	TierOverride        types.Tier
	TierOverrideComment string

	FactorRatings []model.FactorRating

	// Confirmed acknowledges a previously returned change impact warning
	Confirmed bool
}

// SaveResult is the outcome of a save. When Impact is set the save did NOT
// happen; the caller must confirm and retry.
type SaveResult struct {
	Assessment *model.Assessment     `json:"assessment,omitempty"`
	Effective  *model.EffectiveTier  `json:"effective,omitempty"`
	Impact     *workflow.CheckResult `json:"impact,omitempty"`
}

// Save creates or updates an assessment. The flow is: authorize, validate,
// derive the effective tier, run the change impact gate for global-scope
// tier changes, persist, record history, and finally notify.
func (uc *AssessmentUseCase) Save(ctx context.Context, input *SaveInput) (*SaveResult, error) {
	token, err := auth.TokenFromContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(ErrPermissionDenied, "no session")
	}
	if !token.Capabilities.CanManageAssessments {
		return nil, goerr.Wrap(ErrPermissionDenied, "managing assessments requires the can_manage_assessments capability",
			goerr.V("sub", token.Sub))
	}

	if err := input.ModelID.Validate(); err != nil {
		return nil, err
	}
	if err := input.Scope.Validate(); err != nil {
		return nil, err
	}
	if !input.Scope.IsGlobal() && !uc.policy.HasRegion(input.Scope.RegionID) {
		return nil, goerr.New("unknown region", goerr.V("region_id", input.Scope.RegionID))
	}

	candidate := &model.Assessment{
		ID:                          input.AssessmentID,
		ModelID:                     input.ModelID,
		Scope:                       input.Scope,
		Quantitative:                input.Quantitative,
		QuantitativeComment:         input.QuantitativeComment,
		QuantitativeOverride:        input.QuantitativeOverride,
		QuantitativeOverrideComment: input.QuantitativeOverrideComment,
		QualitativeOverride:         input.QualitativeOverride,
		QualitativeOverrideComment:  input.QualitativeOverrideComment,
		TierOverride:                input.TierOverride,
		TierOverrideComment:         input.TierOverrideComment,
		FactorRatings:               input.FactorRatings,
	}

	if violations := model.ValidateAssessment(candidate, uc.policy.Factors); len(violations) > 0 {
		return nil, &model.ValidationError{Violations: violations}
	}

	var previous *model.Assessment
	if input.AssessmentID != 0 {
		previous, err = uc.repo.Assessment().Get(ctx, input.ModelID, input.AssessmentID)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return nil, goerr.Wrap(ErrAssessmentNotFound, "cannot update assessment",
					goerr.V(ModelIDKey, input.ModelID),
					goerr.V(AssessmentIDKey, input.AssessmentID))
			}
			return nil, goerr.Wrap(err, "failed to load assessment")
		}
		// Scope is immutable; derive it from the stored record
		candidate.Scope = previous.Scope
	}

	effective := model.ComposeEffectiveTier(candidate, uc.policy.Factors)

	if !input.Confirmed {
		if impact := uc.checkChangeImpact(ctx, candidate, previous, effective); impact != nil {
			return &SaveResult{Impact: impact}, nil
		}
	}

	var saved *model.Assessment
	if previous == nil {
		saved, err = uc.repo.Assessment().Create(ctx, candidate)
		if err != nil {
			if errors.Is(err, interfaces.ErrScopeConflict) {
				return nil, goerr.Wrap(ErrScopeAlreadyAssessed, "scope conflict",
					goerr.V(ModelIDKey, input.ModelID),
					goerr.V("scope", input.Scope.Key()))
			}
			return nil, goerr.Wrap(err, "failed to create assessment")
		}
	} else {
		saved, err = uc.repo.Assessment().Update(ctx, candidate)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to update assessment")
		}
	}

	uc.recordHistory(ctx, token, saved, previous, effective)
	uc.notifyTierChange(ctx, token, saved, previous, effective)

	return &SaveResult{
		Assessment: saved,
		Effective:  &effective,
	}, nil
}

// checkChangeImpact consults the workflow system before a global scope save
// that would change the effective tier. A failing check never blocks the
// save; open validations do, until the caller confirms.
func (uc *AssessmentUseCase) checkChangeImpact(ctx context.Context, candidate, previous *model.Assessment, effective model.EffectiveTier) *workflow.CheckResult {
	if uc.workflow == nil || !candidate.Scope.IsGlobal() {
		return nil
	}
	if !effective.Tier.IsSet() {
		return nil
	}
	if previous != nil {
		previousEffective := model.ComposeEffectiveTier(previous, uc.policy.Factors)
		if previousEffective.Tier == effective.Tier {
			return nil
		}
	}

	result, err := uc.workflow.CheckOpenValidations(ctx, candidate.ModelID, effective.Tier)
	if err != nil {
		_ = errutil.Handle(ctx, err, "change impact check failed, proceeding with save")
		return nil
	}

	if result.HasOpenValidations {
		return result
	}
	return nil
}

func (uc *AssessmentUseCase) recordHistory(ctx context.Context, token *auth.Token, saved, previous *model.Assessment, effective model.EffectiveTier) {
	action := types.HistoryActionCreated
	var changes []model.FieldChange
	if previous != nil {
		action = types.HistoryActionUpdated
		changes = model.DiffAssessments(previous, saved)
	}

	entry := &model.HistoryEntry{
		ModelID:       saved.ModelID,
		AssessmentID:  saved.ID,
		Scope:         saved.Scope,
		Action:        action,
		Actor:         token.Sub,
		EffectiveTier: effective.Tier,
		Changes:       changes,
	}

	if _, err := uc.repo.History().Add(ctx, entry); err != nil {
		// The save already happened; a lost history entry is logged, not
		// surfaced to the caller.
		_ = errutil.Handle(ctx, err, "failed to record assessment history")
	}
}

func (uc *AssessmentUseCase) notifyTierChange(ctx context.Context, token *auth.Token, saved, previous *model.Assessment, effective model.EffectiveTier) {
	if uc.notifier == nil || !saved.Scope.IsGlobal() || !effective.Tier.IsSet() {
		return
	}

	var previousTier types.Tier
	if previous != nil {
		previousTier = model.ComposeEffectiveTier(previous, uc.policy.Factors).Tier
	}
	if previousTier == effective.Tier {
		return
	}

	modelID := saved.ModelID
	currentTier := effective.Tier
	actor := token.Sub
	async.Dispatch(ctx, func(ctx context.Context) error {
		return uc.notifier.NotifyTierChange(ctx, modelID, previousTier, currentTier, actor)
	})
}

// Get returns one assessment with its derived effective tier
func (uc *AssessmentUseCase) Get(ctx context.Context, modelID types.ModelID, id int64) (*model.Assessment, *model.EffectiveTier, error) {
	a, err := uc.repo.Assessment().Get(ctx, modelID, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil, goerr.Wrap(ErrAssessmentNotFound, "assessment not found",
				goerr.V(ModelIDKey, modelID),
				goerr.V(AssessmentIDKey, id))
		}
		return nil, nil, goerr.Wrap(err, "failed to get assessment")
	}

	effective := model.ComposeEffectiveTier(a, uc.policy.Factors)
	return a, &effective, nil
}

// List returns all of a model's assessments, global scope first
func (uc *AssessmentUseCase) List(ctx context.Context, modelID types.ModelID) ([]*model.Assessment, []model.EffectiveTier, error) {
	if err := modelID.Validate(); err != nil {
		return nil, nil, err
	}

	assessments, err := uc.repo.Assessment().ListByModel(ctx, modelID)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to list assessments", goerr.V(ModelIDKey, modelID))
	}

	effectives := make([]model.EffectiveTier, len(assessments))
	for i, a := range assessments {
		effectives[i] = model.ComposeEffectiveTier(a, uc.policy.Factors)
	}

	return assessments, effectives, nil
}

// Delete archives an assessment and removes it. When archival is enabled
// and fails, the assessment stays.
func (uc *AssessmentUseCase) Delete(ctx context.Context, modelID types.ModelID, id int64) error {
	token, err := auth.TokenFromContext(ctx)
	if err != nil {
		return goerr.Wrap(ErrPermissionDenied, "no session")
	}
	if !token.Capabilities.CanManageAssessments {
		return goerr.Wrap(ErrPermissionDenied, "managing assessments requires the can_manage_assessments capability",
			goerr.V("sub", token.Sub))
	}

	a, err := uc.repo.Assessment().Get(ctx, modelID, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrAssessmentNotFound, "cannot delete assessment",
				goerr.V(ModelIDKey, modelID),
				goerr.V(AssessmentIDKey, id))
		}
		return goerr.Wrap(err, "failed to load assessment")
	}

	if uc.archive != nil {
		data, err := json.Marshal(a)
		if err != nil {
			return goerr.Wrap(err, "failed to marshal assessment for archive")
		}
		object := fmt.Sprintf("%s/%d-%s.json", modelID, id, time.Now().UTC().Format("20060102T150405Z"))
		if err := uc.archive.Store(ctx, object, data); err != nil {
			return goerr.Wrap(err, "failed to archive assessment, delete aborted",
				goerr.V(ModelIDKey, modelID),
				goerr.V(AssessmentIDKey, id))
		}
	}

	if err := uc.repo.Assessment().Delete(ctx, modelID, id); err != nil {
		return goerr.Wrap(err, "failed to delete assessment")
	}

	entry := &model.HistoryEntry{
		ModelID:      modelID,
		AssessmentID: id,
		Scope:        a.Scope,
		Action:       types.HistoryActionDeleted,
		Actor:        token.Sub,
	}
	if _, err := uc.repo.History().Add(ctx, entry); err != nil {
		_ = errutil.Handle(ctx, err, "failed to record assessment history")
	}

	return nil
}

// History returns the audit trail for a model, newest first
func (uc *AssessmentUseCase) History(ctx context.Context, modelID types.ModelID) ([]*model.HistoryEntry, error) {
	if err := modelID.Validate(); err != nil {
		return nil, err
	}

	entries, err := uc.repo.History().ListByModel(ctx, modelID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list history", goerr.V(ModelIDKey, modelID))
	}

	return entries, nil
}

// Preview derives the effective tier for an unsaved assessment snapshot.
// Nothing is validated and nothing is persisted; editors call this on every
// change to show live results.
func (uc *AssessmentUseCase) Preview(ctx context.Context, input *SaveInput) *model.EffectiveTier {
	candidate := &model.Assessment{
		ModelID:              input.ModelID,
		Scope:                input.Scope,
		Quantitative:         input.Quantitative,
		QuantitativeOverride: input.QuantitativeOverride,
		QualitativeOverride:  input.QualitativeOverride,
		TierOverride:         input.TierOverride,
		FactorRatings:        input.FactorRatings,
	}

	effective := model.ComposeEffectiveTier(candidate, uc.policy.Factors)

	logging.From(ctx).Debug("previewed effective tier",
		"model_id", input.ModelID,
		"tier", effective.Tier)

	return &effective
}

// Factors returns the qualitative factor catalog from the risk policy
func (uc *AssessmentUseCase) Factors(ctx context.Context) []policy.Factor {
	return uc.policy.Factors
}

// Regions returns the regions available for regional scopes
func (uc *AssessmentUseCase) Regions(ctx context.Context) []policy.Region {
	return uc.policy.Regions
}

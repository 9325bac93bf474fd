package usecase

import (
	"github.com/mrm-lab/modelrisk/pkg/domain/interfaces"
	"github.com/mrm-lab/modelrisk/pkg/domain/model/policy"
	"github.com/mrm-lab/modelrisk/pkg/service/archive"
	"github.com/mrm-lab/modelrisk/pkg/service/notify"
	"github.com/mrm-lab/modelrisk/pkg/service/workflow"
)

type UseCases struct {
	repo     interfaces.Repository
	policy   *policy.Policy
	workflow workflow.Service
	notifier notify.Service
	archive  archive.Service

	Assessment *AssessmentUseCase
	Auth       AuthUseCaseInterface
}

type Option func(*UseCases)

// WithWorkflow enables the change impact gate against the validation
// workflow system
func WithWorkflow(svc workflow.Service) Option {
	return func(uc *UseCases) {
		uc.workflow = svc
	}
}

// WithNotifier enables tier change notifications
func WithNotifier(svc notify.Service) Option {
	return func(uc *UseCases) {
		uc.notifier = svc
	}
}

// WithArchive enables assessment archival before deletion
func WithArchive(svc archive.Service) Option {
	return func(uc *UseCases) {
		uc.archive = svc
	}
}

func WithAuth(auth AuthUseCaseInterface) Option {
	return func(uc *UseCases) {
		uc.Auth = auth
	}
}

func New(repo interfaces.Repository, p *policy.Policy, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:   repo,
		policy: p,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Assessment = NewAssessmentUseCase(repo, p, uc.workflow, uc.notifier, uc.archive)

	return uc
}

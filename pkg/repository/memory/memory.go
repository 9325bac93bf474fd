package memory

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/mrm-lab/modelrisk/pkg/domain/interfaces"
)

// Sentinel errors for the memory backend
var (
	ErrNotFound      = goerr.Wrap(interfaces.ErrNotFound, "not found")
	ErrScopeConflict = goerr.Wrap(interfaces.ErrScopeConflict, "assessment already exists for scope")
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is the in-memory repository backend for development and tests
type Memory struct {
	assessment *assessmentRepository
	history    *historyRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		assessment: newAssessmentRepository(),
		history:    newHistoryRepository(),
	}
}

func (m *Memory) Assessment() interfaces.AssessmentRepository {
	return m.assessment
}

func (m *Memory) History() interfaces.HistoryRepository {
	return m.history
}

func (m *Memory) Close() error {
	return nil
}

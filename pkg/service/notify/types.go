package notify

import (
	"context"

	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

// Service announces effective tier changes to the risk management channel.
type Service interface {
	NotifyTierChange(ctx context.Context, modelID types.ModelID, previous, current types.Tier, actor string) error
}

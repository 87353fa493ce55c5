package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sitepipe/internal/adapters/logger"
	"go.trai.ch/sitepipe/internal/core/ports"
)

// NodeID is the unique identifier for the telemetry provider Graft node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[*Provider]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Provider, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewProvider(log), nil
		},
	})
}

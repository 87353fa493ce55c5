package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sitepipe/internal/core/ports"
)

// NodeID is the unique identifier for the process spawner Graft node.
const NodeID graft.ID = "adapter.spawner"

func init() {
	graft.Register(graft.Node[ports.ProcessSpawner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.ProcessSpawner, error) {
			return NewSpawner(), nil
		},
	})
}

package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sitepipe/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/sitepipe/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/sitepipe/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/sitepipe/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/sitepipe/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
			telemetry.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	spawner, err := graft.Dep[ports.ProcessSpawner](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	provider, err := graft.Dep[*telemetry.Provider](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, spawner, log, provider), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	provider, err := graft.Dep[*telemetry.Provider](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:          app,
		Logger:       log,
		ConfigLoader: loader,
		Telemetry:    provider,
	}, nil
}

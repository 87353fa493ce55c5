package ports

import "context"

// ProcessSpawner runs external programs with the terminal's standard streams.
//
//go:generate mockgen -source=spawner.go -destination=mocks/mock_spawner.go -package=mocks
type ProcessSpawner interface {
	// Spawn runs name with args in dir and waits for it to exit.
	//
	// A process that starts and exits returns its exit code with a nil error,
	// whatever the code. The error is non-nil only when the process could not be
	// started or was interrupted by ctx.
	Spawn(ctx context.Context, dir, name string, args []string) (int, error)
}

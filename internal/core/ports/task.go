package ports

import (
	"context"

	"go.trai.ch/sitepipe/internal/core/domain"
)

// Task is a named unit of build work.
//
//go:generate mockgen -source=task.go -destination=mocks/mock_task.go -package=mocks
type Task interface {
	// Name returns the name the task is invoked by.
	Name() domain.TaskName
	// Run performs the work. A nil error signals success.
	Run(ctx context.Context) error
}

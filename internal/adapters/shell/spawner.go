// Package shell runs external programs attached to the terminal.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/creack/pty"
	"go.trai.ch/sitepipe/internal/ui/output"
	"go.trai.ch/zerr"
)

// waitDelay bounds how long output copying may outlive a killed process.
const waitDelay = time.Second

// Spawner implements ports.ProcessSpawner.
//
// With PTY set the child runs on a pseudo-terminal whose output is copied to
// Stdout, so programs that colour their output only on a terminal keep doing so.
// Otherwise the child inherits the streams directly.
type Spawner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	PTY    bool
}

// NewSpawner creates a Spawner on the process's standard streams.
// A pseudo-terminal is used when stdout is a terminal on a platform that supports one.
func NewSpawner() *Spawner {
	return &Spawner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		PTY:    runtime.GOOS != "windows" && output.IsTerminal(os.Stdout),
	}
}

// Spawn runs name with args in dir and waits for it to exit.
func (s *Spawner) Spawn(ctx context.Context, dir, name string, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // the generator binary is fixed by the layout
	cmd.Dir = dir
	cmd.Env = os.Environ()
	cmd.WaitDelay = waitDelay

	var err error
	if s.PTY {
		err = s.runPTY(cmd)
	} else {
		err = s.runInherited(cmd)
	}

	return exitStatus(ctx, name, err)
}

func (s *Spawner) runInherited(cmd *exec.Cmd) error {
	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	if err := cmd.Start(); err != nil {
		return &startError{err: err}
	}
	return cmd.Wait()
}

func (s *Spawner) runPTY(cmd *exec.Cmd) error {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return &startError{err: err}
	}

	if f, ok := s.Stdin.(*os.File); ok && output.IsTerminal(f) {
		_ = pty.InheritSize(f, ptmx)
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		// Reading the master fails with EIO once the child side closes.
		_, _ = io.Copy(s.Stdout, ptmx)
	}()

	waitErr := cmd.Wait()
	<-ioDone
	_ = ptmx.Close()

	return waitErr
}

// startError marks a process that never ran.
type startError struct {
	err error
}

func (e *startError) Error() string { return e.err.Error() }
func (e *startError) Unwrap() error { return e.err }

// exitStatus maps the result of running a process onto ports.ProcessSpawner semantics.
func exitStatus(ctx context.Context, name string, err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	var startErr *startError
	if errors.As(err, &startErr) {
		return -1, zerr.With(zerr.Wrap(startErr.err, "failed to start process"), "command", name)
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, zerr.With(zerr.Wrap(ctxErr, "process interrupted"), "command", name)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	return -1, zerr.With(zerr.Wrap(err, "process failed"), "command", name)
}

package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/coralsh/coral/runtime/parser"
)

// Executor runs classified commands against a session: builtins
// in-process, everything else as a spawned child. Builtins and external
// commands share the redirection path, so a builtin combined with > or
// >> writes to the target file like any other command.
type Executor struct {
	session *Session
}

// New creates an Executor bound to session.
func New(session *Session) *Executor {
	return &Executor{session: session}
}

// Execute runs one command to completion. It returns a non-nil error
// only for the exit builtin's ExitError; every other failure is
// reported on the session's output writer and the loop continues.
func (e *Executor) Execute(ctx context.Context, cmd *parser.Command) error {
	if e.session.IsBuiltin(cmd.Name) {
		return e.runBuiltin(cmd)
	}
	e.runExternal(ctx, cmd)
	return nil
}

func (e *Executor) runBuiltin(cmd *parser.Command) error {
	s := e.session

	sinks, err := openSinks(cmd.Redirects, s.Cwd)
	if err != nil {
		fmt.Fprintln(s.Out, err)
		return nil
	}

	capture := &sinkWriteErrorCapture{writer: sinks.Stdout(s.Out)}
	runErr := s.builtins[cmd.Name](s, cmd.Args, capture)
	closeErr := sinks.Close()

	var exitErr *ExitError
	if errors.As(runErr, &exitErr) {
		return runErr
	}

	if writeErr := capture.Err(); writeErr != nil {
		fmt.Fprintf(s.Out, "%s: write: %v\n", cmd.Name, writeErr)
	} else if runErr != nil {
		fmt.Fprintf(s.Out, "%s: %v\n", cmd.Name, runErr)
	}
	if closeErr != nil {
		fmt.Fprintf(s.Out, "%s: %v\n", cmd.Name, closeErr)
	}
	return nil
}

func (e *Executor) runExternal(ctx context.Context, cmd *parser.Command) {
	s := e.session

	path, ok := s.LookPath(cmd.Name)
	if !ok {
		fmt.Fprintf(s.Out, "%s: not found\n", cmd.Name)
		return
	}

	sinks, err := openSinks(cmd.Redirects, s.Cwd)
	if err != nil {
		fmt.Fprintln(s.Out, err)
		return
	}

	child := exec.CommandContext(ctx, path, cmd.Args...)
	child.Args = append([]string{cmd.Name}, cmd.Args...)
	child.Dir = s.Cwd
	child.Stdin = os.Stdin
	child.Stdout = sinks.Stdout(s.Out)
	child.Stderr = sinks.Stderr(s.Err)

	// Two completion signals: the child's exit and the sinks' close.
	// Both must fire before control returns to the prompt.
	runErr := child.Run()
	closeErr := sinks.Close()

	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		fmt.Fprintf(s.Out, "%s: %v\n", cmd.Name, runErr)
	}
	if closeErr != nil {
		fmt.Fprintf(s.Out, "%s: %v\n", cmd.Name, closeErr)
	}
}

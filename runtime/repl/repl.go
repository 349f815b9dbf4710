package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coralsh/coral/runtime/executor"
	"github.com/coralsh/coral/runtime/lexer"
	"github.com/coralsh/coral/runtime/parser"
)

// DefaultPrompt is printed before each read unless overridden.
const DefaultPrompt = "$ "

// exitSentinel terminates the loop on exact match, before tokenizing.
const exitSentinel = "exit 0"

// REPL is the interpreter's read-eval loop: prompt, read one line,
// tokenize, dispatch, execute, repeat. There is one logical thread of
// control; the loop blocks until each command's side effects, including
// redirected file writes, are complete before prompting again.
type REPL struct {
	session *executor.Session
	exec    *executor.Executor
	lexer   *lexer.Lexer
	in      *bufio.Reader
	prompt  string
}

// Option configures a REPL.
type Option func(*REPL)

// WithPrompt overrides the prompt string.
func WithPrompt(prompt string) Option {
	return func(r *REPL) {
		r.prompt = prompt
	}
}

// WithInput overrides where input lines are read from. The default is
// standard input.
func WithInput(in io.Reader) Option {
	return func(r *REPL) {
		r.in = bufio.NewReader(in)
	}
}

// New creates a REPL bound to session.
func New(session *executor.Session, opts ...Option) *REPL {
	r := &REPL{
		session: session,
		exec:    executor.New(session),
		lexer:   lexer.New(),
		in:      bufio.NewReader(os.Stdin),
		prompt:  DefaultPrompt,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run loops until the exit sentinel, the exit builtin, or end of input,
// and returns the process exit status. Syntax errors and command
// failures are reported on the session's output writer and the loop
// continues.
func (r *REPL) Run(ctx context.Context) (int, error) {
	for {
		fmt.Fprint(r.session.Out, r.prompt)

		line, readErr := r.in.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				if line != "" {
					if code, done := r.eval(ctx, line); done {
						return code, nil
					}
				}
				return 0, nil
			}
			return 0, readErr
		}

		if code, done := r.eval(ctx, line); done {
			return code, nil
		}
	}
}

// eval processes one line. done reports that the loop should stop and
// the process should exit with code.
func (r *REPL) eval(ctx context.Context, line string) (code int, done bool) {
	if line == exitSentinel {
		return 0, true
	}
	if strings.TrimSpace(line) == "" {
		return 0, false
	}

	tokens, err := r.lexer.Tokenize(line)
	if err != nil {
		fmt.Fprintf(r.session.Out, "syntax error: %v\n", err)
		return 0, false
	}

	cmd, err := parser.Parse(tokens)
	if err != nil {
		fmt.Fprintln(r.session.Out, err)
		return 0, false
	}

	if err := r.exec.Execute(ctx, cmd); err != nil {
		var exitErr *executor.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code, true
		}
		fmt.Fprintln(r.session.Out, err)
	}
	return 0, false
}

package executor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Builtin is a command handled in-process. out is the writer the
// builtin prints to; with a stdout redirection in effect it is the
// opened target file instead of the session writer.
type Builtin func(s *Session, args []string, out io.Writer) error

// ExitError terminates the read-eval loop, carrying the process exit
// status.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

func (s *Session) registerBuiltins() {
	s.builtins["echo"] = builtinEcho
	s.builtins["type"] = builtinType
	s.builtins["pwd"] = builtinPwd
	s.builtins["cd"] = builtinCd
	s.builtins["exit"] = builtinExit
}

func builtinEcho(s *Session, args []string, out io.Writer) error {
	_, err := fmt.Fprintln(out, strings.Join(args, " "))
	return err
}

func builtinType(s *Session, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprintln(out, "type: usage: type NAME")
		return nil
	}

	name := args[0]
	if s.IsBuiltin(name) {
		fmt.Fprintf(out, "%s is a shell builtin\n", name)
		return nil
	}
	if path, ok := s.LookPath(name); ok {
		fmt.Fprintf(out, "%s is %s\n", name, path)
		return nil
	}
	fmt.Fprintf(out, "%s: not found\n", name)
	return nil
}

func builtinPwd(s *Session, args []string, out io.Writer) error {
	fmt.Fprintln(out, s.Cwd)
	return nil
}

func builtinCd(s *Session, args []string, out io.Writer) error {
	arg := "~"
	if len(args) > 0 {
		arg = args[0]
	}

	target, err := s.resolveCdTarget(arg)
	if err != nil {
		fmt.Fprintln(out, err)
		return nil
	}

	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(out, "cd: no such file or directory: %s\n", arg)
		return nil
	}

	s.Cwd = target
	return nil
}

// resolveCdTarget turns a cd argument into an absolute path. A leading
// ~ expands to the home directory; relative paths resolve against the
// session's current directory.
func (s *Session) resolveCdTarget(arg string) (string, error) {
	trimmed := strings.TrimLeft(arg, " \t")

	if strings.HasPrefix(trimmed, "~") {
		home, ok := homeDir()
		if !ok {
			return "", fmt.Errorf("cd: home directory not set")
		}
		return filepath.Clean(home + filepath.FromSlash(trimmed[1:])), nil
	}

	path := filepath.FromSlash(trimmed)
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.Cwd, path)
	}
	return filepath.Clean(path), nil
}

func builtinExit(s *Session, args []string, out io.Writer) error {
	code := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(out, "exit: %s: numeric argument required\n", args[0])
			return nil
		}
		code = n
	}
	return &ExitError{Code: code}
}

package executor

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Session is the process-wide shell state: the current working
// directory, the builtin table, and the writers commands print to.
// There is exactly one Session per interpreter run; Cwd is mutated only
// by the cd builtin and the builtin table is fixed after New.
type Session struct {
	Cwd string

	Out io.Writer
	Err io.Writer

	pathDirs []string
	builtins map[string]Builtin
}

// NewSession creates the session with Cwd set to the process's initial
// working directory and the search path split from the PATH variable.
func NewSession(out, errw io.Writer) (*Session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining working directory: %w", err)
	}

	s := &Session{
		Cwd:      cwd,
		Out:      out,
		Err:      errw,
		pathDirs: splitPathList(os.Getenv("PATH")),
		builtins: make(map[string]Builtin),
	}
	s.registerBuiltins()
	return s, nil
}

// AddPathDirs appends extra directories to the end of the search path.
func (s *Session) AddPathDirs(dirs []string) {
	s.pathDirs = append(s.pathDirs, dirs...)
}

// PathDirs returns the ordered search-path directory list.
func (s *Session) PathDirs() []string {
	return s.pathDirs
}

// IsBuiltin reports whether name is handled in-process.
func (s *Session) IsBuiltin(name string) bool {
	_, ok := s.builtins[name]
	return ok
}

// BuiltinNames returns the builtin names in sorted order.
func (s *Session) BuiltinNames() []string {
	names := make([]string, 0, len(s.builtins))
	for name := range s.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func splitPathList(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, string(os.PathListSeparator))
}

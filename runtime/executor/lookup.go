package executor

import (
	"os"
	"path/filepath"
)

// LookPath resolves name against the session's search path: each
// directory is tried in order, and the first one holding an executable
// regular file under that name wins.
func (s *Session) LookPath(name string) (string, bool) {
	for _, dir := range s.pathDirs {
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode()&0o111 != 0
}

// homeDir returns the user's home directory from the environment,
// trying HOME first and USERPROFILE second.
func homeDir() (string, bool) {
	for _, name := range []string{"HOME", "USERPROFILE"} {
		if home := os.Getenv(name); home != "" {
			return home, true
		}
	}
	return "", false
}

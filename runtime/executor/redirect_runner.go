package executor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/coralsh/coral/runtime/parser"
)

// sinkWriteErrorCapture wraps a sink writer and records the first write
// failure so it can be reported after the command finishes.
type sinkWriteErrorCapture struct {
	writer io.Writer
	mu     sync.Mutex
	err    error
}

func (c *sinkWriteErrorCapture) Write(p []byte) (int, error) {
	n, err := c.writer.Write(p)
	if err != nil {
		c.mu.Lock()
		if c.err == nil {
			c.err = err
		}
		c.mu.Unlock()
	}
	return n, err
}

func (c *sinkWriteErrorCapture) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// redirectSinks holds the opened target files for one command, at most
// one per stream. Both builtins and external commands route their
// redirections through this type.
type redirectSinks struct {
	stdout *os.File
	stderr *os.File
}

// openSinks opens the target file for each requested redirection.
// Relative targets resolve against cwd; missing parent directories are
// created. On any failure every already-opened sink is closed.
func openSinks(redirects []parser.Redirect, cwd string) (*redirectSinks, error) {
	sinks := &redirectSinks{}

	for _, r := range redirects {
		file, err := openSink(r, cwd)
		if err != nil {
			_ = sinks.Close()
			return nil, err
		}
		switch r.Stream {
		case parser.Stdout:
			sinks.stdout = file
		case parser.Stderr:
			sinks.stderr = file
		}
	}

	return sinks, nil
}

func openSink(r parser.Redirect, cwd string) (*os.File, error) {
	target := filepath.FromSlash(r.Target)
	if !filepath.IsAbs(target) {
		target = filepath.Join(cwd, target)
	}

	if dir := filepath.Dir(target); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%s: cannot create parent directory: %w", r.Target, err)
		}
	}

	flags := os.O_CREATE | os.O_WRONLY
	switch r.Mode {
	case parser.Truncate:
		flags |= os.O_TRUNC
	case parser.Append:
		flags |= os.O_APPEND
	}

	file, err := os.OpenFile(target, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.Target, err)
	}
	return file, nil
}

// Stdout returns the stdout sink, or fallback when stdout is not
// redirected.
func (s *redirectSinks) Stdout(fallback io.Writer) io.Writer {
	if s.stdout != nil {
		return s.stdout
	}
	return fallback
}

// Stderr returns the stderr sink, or fallback when stderr is not
// redirected.
func (s *redirectSinks) Stderr(fallback io.Writer) io.Writer {
	if s.stderr != nil {
		return s.stderr
	}
	return fallback
}

// Close flushes and closes every opened sink. The command's completion
// is not observable until Close has returned: the next prompt must not
// appear before redirected output is on disk.
func (s *redirectSinks) Close() error {
	var errs []error
	for _, file := range []*os.File{s.stdout, s.stderr} {
		if file == nil {
			continue
		}
		if err := file.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.stdout = nil
	s.stderr = nil
	return errors.Join(errs...)
}

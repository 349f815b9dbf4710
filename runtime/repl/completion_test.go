package repl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type staticNames []string

func (s staticNames) Names() []string {
	return s
}

func TestCompletePrefixMatches(t *testing.T) {
	c := NewCompleter([]string{"cd", "echo", "exit", "pwd", "type"}, staticNames{"git", "grep", "gzip"})

	require.Equal(t, []string{"echo", "exit"}, c.Complete("e"))
	require.Equal(t, []string{"git", "grep", "gzip"}, c.Complete("g"))
	require.Equal(t, []string{"grep"}, c.Complete("gr"))
}

func TestCompleteUsesLastWord(t *testing.T) {
	c := NewCompleter([]string{"cd", "echo"}, staticNames{"grep"})

	require.Equal(t, []string{"grep"}, c.Complete("echo hi | gr"))
	require.Equal(t, []string{"echo"}, c.Complete("type ec"))
}

func TestCompleteFallsBackToFuzzy(t *testing.T) {
	c := NewCompleter([]string{"cd", "echo"}, staticNames{"kubectl"})

	got := c.Complete("kbctl")
	require.Equal(t, []string{"kubectl"}, got)
}

func TestCompleteEmptyInput(t *testing.T) {
	c := NewCompleter([]string{"cd"}, staticNames{"ls"})

	require.Nil(t, c.Complete(""))
	require.Nil(t, c.Complete("echo "))
}

func TestCompleteNilSource(t *testing.T) {
	c := NewCompleter([]string{"cd", "echo"}, nil)

	require.Equal(t, []string{"cd"}, c.Complete("c"))
}

func TestCompleteNoMatches(t *testing.T) {
	c := NewCompleter([]string{"cd"}, staticNames{"ls"})

	require.Empty(t, c.Complete("zzz"))
}

package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/coralsh/coral/runtime/lexer"
)

func mustTokenize(t *testing.T, line string) []lexer.Token {
	t.Helper()
	tokens, err := lexer.New().Tokenize(line)
	require.NoError(t, err)
	return tokens
}

func TestParseClassification(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Command
	}{
		{
			name:  "name only",
			input: "pwd",
			want:  &Command{Name: "pwd"},
		},
		{
			name:  "name and arguments in order",
			input: "echo one two three",
			want:  &Command{Name: "echo", Args: []string{"one", "two", "three"}},
		},
		{
			name:  "redirection target is not an argument",
			input: "echo hi > out.txt",
			want: &Command{
				Name: "echo",
				Args: []string{"hi"},
				Redirects: []Redirect{
					{Stream: Stdout, Mode: Truncate, Target: "out.txt"},
				},
			},
		},
		{
			name:  "arguments after redirection stay arguments",
			input: "echo > out.txt hi there",
			want: &Command{
				Name: "echo",
				Args: []string{"hi", "there"},
				Redirects: []Redirect{
					{Stream: Stdout, Mode: Truncate, Target: "out.txt"},
				},
			},
		},
		{
			name:  "stderr append",
			input: "cmd 2>> err.log",
			want: &Command{
				Name: "cmd",
				Redirects: []Redirect{
					{Stream: Stderr, Mode: Append, Target: "err.log"},
				},
			},
		},
		{
			name:  "both streams redirected",
			input: "cmd 1> out.txt 2> err.txt",
			want: &Command{
				Name: "cmd",
				Redirects: []Redirect{
					{Stream: Stdout, Mode: Truncate, Target: "out.txt"},
					{Stream: Stderr, Mode: Truncate, Target: "err.txt"},
				},
			},
		},
		{
			name:  "same stream redirected twice keeps the later one",
			input: "cmd > first.txt >> second.txt",
			want: &Command{
				Name: "cmd",
				Redirects: []Redirect{
					{Stream: Stdout, Mode: Append, Target: "second.txt"},
				},
			},
		},
		{
			name:  "explicit and bare stdout operators share a stream",
			input: "cmd 1> a.txt > b.txt",
			want: &Command{
				Name: "cmd",
				Redirects: []Redirect{
					{Stream: Stdout, Mode: Truncate, Target: "b.txt"},
				},
			},
		},
		{
			name:  "redirection before command name",
			input: "> out.txt echo hi",
			want: &Command{
				Name: "echo",
				Args: []string{"hi"},
				Redirects: []Redirect{
					{Stream: Stdout, Mode: Truncate, Target: "out.txt"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(mustTokenize(t, tt.input))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("command mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType ErrorType
	}{
		{
			name:     "trailing redirect without target",
			input:    "echo hi >",
			wantType: ErrorDanglingRedirect,
		},
		{
			name:     "two redirects one target",
			input:    "cmd > >> out.txt",
			wantType: ErrorDanglingRedirect,
		},
		{
			name:     "redirect only",
			input:    "> out.txt",
			wantType: ErrorMissingCommand,
		},
		{
			name:     "pipe is rejected",
			input:    "cat file | wc",
			wantType: ErrorPipeUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Parse(mustTokenize(t, tt.input))
			require.Nil(t, cmd)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			require.Equal(t, tt.wantType, parseErr.Type)
		})
	}
}

func TestParseEmptyTokenSequence(t *testing.T) {
	cmd, err := Parse(nil)
	require.Nil(t, cmd)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, ErrorMissingCommand, parseErr.Type)
}

func TestRedirectFor(t *testing.T) {
	cmd, err := Parse(mustTokenize(t, "cmd 2> err.txt"))
	require.NoError(t, err)

	r, ok := cmd.RedirectFor(Stderr)
	require.True(t, ok)
	require.Equal(t, Redirect{Stream: Stderr, Mode: Truncate, Target: "err.txt"}, r)

	_, ok = cmd.RedirectFor(Stdout)
	require.False(t, ok)
}

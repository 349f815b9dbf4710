package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestTokenizeRedirectOperators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "stdout truncate",
			input: "cmd > out.txt",
			want: []Token{
				{Kind: Word, Text: "cmd"},
				{Kind: Redirect, Text: ">"},
				{Kind: Word, Text: "out.txt"},
			},
		},
		{
			name:  "explicit stdout truncate",
			input: "cmd 1> out.txt",
			want: []Token{
				{Kind: Word, Text: "cmd"},
				{Kind: Redirect, Text: "1>"},
				{Kind: Word, Text: "out.txt"},
			},
		},
		{
			name:  "stderr truncate",
			input: "cmd 2> err.txt",
			want: []Token{
				{Kind: Word, Text: "cmd"},
				{Kind: Redirect, Text: "2>"},
				{Kind: Word, Text: "err.txt"},
			},
		},
		{
			name:  "stdout append",
			input: "cmd >> out.txt",
			want: []Token{
				{Kind: Word, Text: "cmd"},
				{Kind: Redirect, Text: ">>"},
				{Kind: Word, Text: "out.txt"},
			},
		},
		{
			name:  "explicit stdout append",
			input: "cmd 1>> out.txt",
			want: []Token{
				{Kind: Word, Text: "cmd"},
				{Kind: Redirect, Text: "1>>"},
				{Kind: Word, Text: "out.txt"},
			},
		},
		{
			name:  "stderr append longest match",
			input: "cmd 2>> out.txt",
			want: []Token{
				{Kind: Word, Text: "cmd"},
				{Kind: Redirect, Text: "2>>"},
				{Kind: Word, Text: "out.txt"},
			},
		},
		{
			name:  "operator without surrounding spaces",
			input: "cmd>out.txt",
			want: []Token{
				{Kind: Word, Text: "cmd"},
				{Kind: Redirect, Text: ">"},
				{Kind: Word, Text: "out.txt"},
			},
		},
		{
			name:  "append operator without surrounding spaces",
			input: "cmd>>out.txt",
			want: []Token{
				{Kind: Word, Text: "cmd"},
				{Kind: Redirect, Text: ">>"},
				{Kind: Word, Text: "out.txt"},
			},
		},
		{
			name:  "arguments before redirection",
			input: "ls -la > listing.txt",
			want: []Token{
				{Kind: Word, Text: "ls"},
				{Kind: Word, Text: "-la"},
				{Kind: Redirect, Text: ">"},
				{Kind: Word, Text: "listing.txt"},
			},
		},
		{
			name:  "two redirections",
			input: "cmd > out.txt 2> err.txt",
			want: []Token{
				{Kind: Word, Text: "cmd"},
				{Kind: Redirect, Text: ">"},
				{Kind: Word, Text: "out.txt"},
				{Kind: Redirect, Text: "2>"},
				{Kind: Word, Text: "err.txt"},
			},
		},
		{
			name:  "quoted operator is word text",
			input: `cmd ">" out.txt`,
			want: []Token{
				{Kind: Word, Text: "cmd"},
				{Kind: Word, Text: ">"},
				{Kind: Word, Text: "out.txt"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New().Tokenize(tt.input)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("token mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenizePipe(t *testing.T) {
	got, err := New().Tokenize("cat file | wc -l")
	require.NoError(t, err)

	want := []Token{
		{Kind: Word, Text: "cat"},
		{Kind: Word, Text: "file"},
		{Kind: Pipe, Text: "|"},
		{Kind: Word, Text: "wc"},
		{Kind: Word, Text: "-l"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

package parser

import (
	"github.com/coralsh/coral/runtime/lexer"
)

// Stream identifies which standard stream a redirection applies to.
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

func (s Stream) String() string {
	switch s {
	case Stdout:
		return "stdout"
	case Stderr:
		return "stderr"
	default:
		return "unknown"
	}
}

// Mode selects how the redirection target file is opened.
type Mode int

const (
	Truncate Mode = iota
	Append
)

func (m Mode) String() string {
	switch m {
	case Truncate:
		return "truncate"
	case Append:
		return "append"
	default:
		return "unknown"
	}
}

// Redirect is a fully resolved redirection request: which stream, how
// the target is opened, and the target path as written on the line.
type Redirect struct {
	Stream Stream
	Mode   Mode
	Target string
}

// Command is a classified command line: the command name, its arguments
// in original order, and at most one redirection per stream. A Command
// lives for one loop iteration.
type Command struct {
	Name      string
	Args      []string
	Redirects []Redirect
}

// RedirectFor returns the redirection recorded for stream, if any.
func (c *Command) RedirectFor(stream Stream) (Redirect, bool) {
	for _, r := range c.Redirects {
		if r.Stream == stream {
			return r, true
		}
	}
	return Redirect{}, false
}

// redirectOps maps each operator to the stream and mode it selects.
var redirectOps = map[string]Redirect{
	">":   {Stream: Stdout, Mode: Truncate},
	"1>":  {Stream: Stdout, Mode: Truncate},
	"2>":  {Stream: Stderr, Mode: Truncate},
	">>":  {Stream: Stdout, Mode: Append},
	"1>>": {Stream: Stdout, Mode: Append},
	"2>>": {Stream: Stderr, Mode: Append},
}

// Parse classifies a token sequence into a Command in a single scan.
//
// Each redirection operator pairs with the next word that follows it,
// which becomes its target rather than an argument. Of the remaining
// words, the first is the command name and the rest are arguments in
// original order. If the same stream is redirected twice, the later
// operator wins. A redirection operator with no word left to pair with
// is a syntax error, as is a line with no command name. Pipe tokens are
// rejected outright.
func Parse(tokens []lexer.Token) (*Command, error) {
	cmd := &Command{}
	named := false

	var pending []lexer.Token

	for _, tok := range tokens {
		switch tok.Kind {
		case lexer.Pipe:
			return nil, pipeUnsupportedError(tok)

		case lexer.Redirect:
			pending = append(pending, tok)

		case lexer.Word:
			if len(pending) > 0 {
				op := pending[0]
				pending = pending[1:]
				cmd.recordRedirect(redirectOps[op.Text], tok.Text)
				continue
			}
			if !named {
				cmd.Name = tok.Text
				named = true
				continue
			}
			cmd.Args = append(cmd.Args, tok.Text)
		}
	}

	if len(pending) > 0 {
		return nil, danglingRedirectError(pending[0])
	}
	if !named {
		return nil, missingCommandError()
	}

	return cmd, nil
}

// recordRedirect stores a redirection, replacing any earlier one for
// the same stream (last-write-wins).
func (c *Command) recordRedirect(proto Redirect, target string) {
	proto.Target = target
	for i, r := range c.Redirects {
		if r.Stream == proto.Stream {
			c.Redirects[i] = proto
			return
		}
	}
	c.Redirects = append(c.Redirects, proto)
}

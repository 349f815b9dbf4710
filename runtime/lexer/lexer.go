package lexer

import (
	"errors"
	"log/slog"
	"os"
	"strings"
)

// Syntax errors surfaced to the read-eval loop. Both leave the loop
// running; the offending line is discarded.
var (
	ErrUnclosedQuote  = errors.New("unclosed quote")
	ErrDanglingEscape = errors.New("dangling escape at end of line")
)

// state tracks which quoting context the scanner is in.
type state int

const (
	stateNormal state = iota
	stateSingleQuote
	stateDoubleQuote
)

// doubleQuoteEscapable is the set of characters a backslash escapes
// inside double quotes. For any other character the backslash itself is
// kept literally.
const doubleQuoteEscapable = "\"$\\`"

// Lexer turns one line of input into a token sequence, honoring
// shell-style quoting, escaping, and redirection operators. A Lexer is
// reusable across lines but not safe for concurrent use.
type Lexer struct {
	input  string
	pos    int
	state  state
	escape bool

	buf    strings.Builder
	tokens []Token

	logger *slog.Logger
}

// New creates a Lexer. Debug tracing is enabled when CORAL_DEBUG is set.
func New() *Lexer {
	level := slog.LevelInfo
	if os.Getenv("CORAL_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return &Lexer{
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
	}
}

// Tokenize scans line (which must not contain a newline) left to right
// and returns the ordered token sequence, or a syntax error if a quote
// is left open or the line ends mid-escape.
func (l *Lexer) Tokenize(line string) ([]Token, error) {
	l.input = line
	l.pos = 0
	l.state = stateNormal
	l.escape = false
	l.buf.Reset()
	l.tokens = nil

	for l.pos < len(l.input) {
		ch := l.input[l.pos]

		switch l.state {
		case stateNormal:
			l.scanNormal(ch)
		case stateSingleQuote:
			l.scanSingleQuote(ch)
		case stateDoubleQuote:
			l.scanDoubleQuote(ch)
		}
	}

	if l.state != stateNormal {
		return nil, ErrUnclosedQuote
	}
	if l.escape {
		return nil, ErrDanglingEscape
	}

	l.flushWord()

	l.logger.Debug("tokenized line", "input", line, "tokens", len(l.tokens))
	return l.tokens, nil
}

// scanNormal handles one character outside any quotes. Operator
// recognition happens here, before the character copy, and only when no
// escape is pending.
func (l *Lexer) scanNormal(ch byte) {
	if l.escape {
		// An escaped character is copied verbatim, spaces included.
		l.buf.WriteByte(ch)
		l.escape = false
		l.pos++
		return
	}

	if op := l.matchRedirect(); op != "" {
		l.flushWord()
		l.tokens = append(l.tokens, Token{Kind: Redirect, Text: op})
		l.pos += len(op)
		return
	}

	switch ch {
	case ' ', '\t':
		l.flushWord()
	case '\'':
		l.state = stateSingleQuote
	case '"':
		l.state = stateDoubleQuote
	case '\\':
		l.escape = true
	case '|':
		l.flushWord()
		l.tokens = append(l.tokens, Token{Kind: Pipe, Text: "|"})
	default:
		l.buf.WriteByte(ch)
	}
	l.pos++
}

// scanSingleQuote copies every character verbatim until the closing
// quote. There is no escaping inside single quotes: a backslash is just
// a backslash.
func (l *Lexer) scanSingleQuote(ch byte) {
	if ch == '\'' {
		l.state = stateNormal
	} else {
		l.buf.WriteByte(ch)
	}
	l.pos++
}

// scanDoubleQuote handles one character inside double quotes. A
// backslash collapses with the next character only when that character
// is in doubleQuoteEscapable; otherwise the backslash stays literal.
func (l *Lexer) scanDoubleQuote(ch byte) {
	if l.escape {
		if !strings.ContainsRune(doubleQuoteEscapable, rune(ch)) {
			l.buf.WriteByte('\\')
		}
		l.buf.WriteByte(ch)
		l.escape = false
		l.pos++
		return
	}

	switch ch {
	case '"':
		l.state = stateNormal
	case '\\':
		l.escape = true
	default:
		l.buf.WriteByte(ch)
	}
	l.pos++
}

// matchRedirect probes the input at the current position against the
// operator table, longest candidate first, and returns the matched
// operator or "".
func (l *Lexer) matchRedirect() string {
	rest := l.input[l.pos:]
	for _, op := range redirectOps {
		if strings.HasPrefix(rest, op) {
			return op
		}
	}
	return ""
}

// flushWord emits the accumulated buffer as a Word token. Consecutive
// separators leave the buffer empty and emit nothing.
func (l *Lexer) flushWord() {
	if l.buf.Len() == 0 {
		return
	}
	l.tokens = append(l.tokens, Token{Kind: Word, Text: l.buf.String()})
	l.buf.Reset()
}

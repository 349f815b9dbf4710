package lexer

// Kind classifies a lexed fragment of a command line.
type Kind int

const (
	// Word is a command name, argument, or redirection target after
	// quote and escape processing.
	Word Kind = iota

	// Redirect is a redirection operator (>, 1>, 2>, >>, 1>>, 2>>).
	Redirect

	// Pipe is the | operator. The lexer emits it so the parser can
	// reject pipelines with a clear message instead of treating | as
	// word text.
	Pipe
)

// String returns a string representation of the token kind.
func (k Kind) String() string {
	switch k {
	case Word:
		return "WORD"
	case Redirect:
		return "REDIRECT"
	case Pipe:
		return "PIPE"
	default:
		return "UNKNOWN"
	}
}

// Token is one classified fragment of a command line. Tokens are
// immutable once emitted and their order in the sequence is significant.
type Token struct {
	Kind Kind
	Text string
}

// redirectOps lists every recognized redirection operator, longest
// first. Matching must try them in this order: probing ">" before ">>"
// would split an append operator into two truncate tokens.
var redirectOps = []string{"1>>", "2>>", ">>", "1>", "2>", ">"}

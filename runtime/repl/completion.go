package repl

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxFuzzyCandidates caps how many fuzzy matches a completion returns.
const maxFuzzyCandidates = 10

// Completer produces completion candidates for a partial input line.
// Line editing itself lives outside the interpreter; an editor hands
// the partial line here and renders whatever comes back.
type Completer interface {
	Complete(partial string) []string
}

// NameSource supplies the command names known to the shell, sorted.
type NameSource interface {
	Names() []string
}

// completer ranks builtin names and indexed executables against the
// word under the cursor: exact-prefix matches first, fuzzy matches as a
// fallback.
type completer struct {
	builtins []string
	source   NameSource
}

// NewCompleter creates a Completer over the builtin table and an
// optional executable-name source.
func NewCompleter(builtins []string, source NameSource) Completer {
	return &completer{builtins: builtins, source: source}
}

func (c *completer) Complete(partial string) []string {
	word := lastWord(partial)
	if word == "" {
		return nil
	}

	candidates := c.candidates()

	var prefixed []string
	for _, name := range candidates {
		if strings.HasPrefix(name, word) {
			prefixed = append(prefixed, name)
		}
	}
	if len(prefixed) > 0 {
		sort.Strings(prefixed)
		return prefixed
	}

	ranks := fuzzy.RankFindFold(word, candidates)
	sort.Sort(ranks)
	matches := make([]string, 0, len(ranks))
	for _, rank := range ranks {
		matches = append(matches, rank.Target)
		if len(matches) == maxFuzzyCandidates {
			break
		}
	}
	return matches
}

func (c *completer) candidates() []string {
	names := make([]string, 0, len(c.builtins))
	names = append(names, c.builtins...)
	if c.source != nil {
		names = append(names, c.source.Names()...)
	}
	return names
}

// lastWord returns the word under the cursor: everything after the last
// unquoted space of the partial line.
func lastWord(partial string) string {
	if i := strings.LastIndexByte(partial, ' '); i >= 0 {
		return partial[i+1:]
	}
	return partial
}

// Package completion provides tab completion for command lines described by a
// grammar.Grammar. It splits the line into words, works out which grammar
// position the word under the caret occupies, and filters the candidates
// valid at that position by what has been typed so far.
package completion

import (
	"github.com/atinylittleshell/tabcomplete/internal/grammar"
	"go.uber.org/zap"
)

// Completer answers completion requests against a fixed grammar. It holds no
// mutable state and is safe for concurrent use.
type Completer struct {
	grammar *grammar.Grammar
	logger  *zap.Logger
}

// NewCompleter creates a Completer for g. A nil logger disables logging.
func NewCompleter(g *grammar.Grammar, logger *zap.Logger) *Completer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Completer{
		grammar: g,
		logger:  logger,
	}
}

// Grammar returns the grammar the completer resolves against.
func (c *Completer) Grammar() *grammar.Grammar {
	return c.grammar
}

// GetCompletions returns the candidates for the word at caret, a character
// index into line. A caret past the end of line means a new word is being
// started, so "rush build" with caret 11 completes like "rush build ".
func (c *Completer) GetCompletions(line string, caret int) []string {
	ctx := c.Resolve(line, caret)
	completions := Filter(ctx.Pool, ctx.Partial)

	c.logger.Debug("resolved completion",
		zap.String("line", line),
		zap.Int("caret", caret),
		zap.Stringer("role", ctx.Role),
		zap.String("action", ctx.ActionWord),
		zap.String("partial", ctx.Partial),
		zap.Int("pool", len(ctx.Pool)),
		zap.Int("completions", len(completions)),
	)

	return completions
}

// Resolve returns the completion context for the word at caret without
// filtering it.
func (c *Completer) Resolve(line string, caret int) Context {
	return Resolve(TokensAtCaret(line, caret), c.grammar)
}

// TokensAtCaret tokenizes line up to caret. The last token returned is the
// word being completed: the word the caret is in or directly after, cut at
// the caret, or an empty token when the caret sits in whitespace or past the
// end of the line. Words after the caret are ignored.
func TokensAtCaret(line string, caret int) []Token {
	offset, past := byteOffset(line, caret)
	tokens := Tokenize(line[:offset])

	if past && len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		if !last.Unterminated && last.Start != last.End {
			tokens = append(tokens, Token{Start: offset, End: offset})
		}
	}

	return tokens
}

// byteOffset converts a character index into a byte offset into line,
// clamped to the line. past reports whether caret was beyond the last
// character.
func byteOffset(line string, caret int) (offset int, past bool) {
	if caret <= 0 {
		return 0, false
	}

	n := 0
	for i := range line {
		if n == caret {
			return i, false
		}
		n++
	}
	return len(line), caret > n
}

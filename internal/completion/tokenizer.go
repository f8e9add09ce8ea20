package completion

import (
	"strings"
	"unicode/utf8"
)

// Token is one word of a command line.
type Token struct {
	// Value is the word with any surrounding quotes removed.
	Value string
	// Start and End are byte offsets of the raw word in the line, quotes
	// included. End is exclusive.
	Start int
	End   int
	// Quoted is set when the word began with a single or double quote.
	Quoted bool
	// Unterminated is set when the line ended before the closing quote.
	Unterminated bool
}

// Tokenize splits line into words on runs of unquoted blanks (space, tab,
// carriage return, newline). Other Unicode spaces are part of a word, as they
// are for the shell.
//
// A word that begins with ' or " runs to the next quote of the same kind and
// may contain whitespace; the quotes are not part of its Value. If the line
// ends inside a quote, the content so far is returned as an unterminated
// word. Trailing whitespace yields a final empty token at the end of the
// line, which is the word the user is about to type.
func Tokenize(line string) []Token {
	var tokens []Token

	i := 0
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		if isWordBreak(r) {
			i += size
			continue
		}

		if r == '\'' || r == '"' {
			tok := scanQuoted(line, i, r)
			tokens = append(tokens, tok)
			i = tok.End
			continue
		}

		end := i
		for end < len(line) {
			r, size := utf8.DecodeRuneInString(line[end:])
			if isWordBreak(r) {
				break
			}
			end += size
		}
		tokens = append(tokens, Token{Value: line[i:end], Start: i, End: end})
		i = end
	}

	if endsWithWordBreak(line, tokens) {
		tokens = append(tokens, Token{Start: len(line), End: len(line)})
	}

	return tokens
}

// scanQuoted reads the quoted word whose opening quote is at line[start].
func scanQuoted(line string, start int, quote rune) Token {
	contentStart := start + utf8.RuneLen(quote)
	closing := strings.IndexRune(line[contentStart:], quote)
	if closing < 0 {
		return Token{
			Value:        line[contentStart:],
			Start:        start,
			End:          len(line),
			Quoted:       true,
			Unterminated: true,
		}
	}

	contentEnd := contentStart + closing
	return Token{
		Value:  line[contentStart:contentEnd],
		Start:  start,
		End:    contentEnd + utf8.RuneLen(quote),
		Quoted: true,
	}
}

// endsWithWordBreak reports whether the line ends in unquoted whitespace.
func endsWithWordBreak(line string, tokens []Token) bool {
	if line == "" {
		return false
	}
	if len(tokens) > 0 && tokens[len(tokens)-1].End == len(line) {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(line)
	return isWordBreak(r)
}

func isWordBreak(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

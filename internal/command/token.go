package command

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is one lexical unit of a chat command line.
type Token struct {
	// Value is the dequoted text of the token.
	Value string
	// Start and End delimit the half-open byte range of the original
	// (pre-dequoting) token text within the source message.
	Start int
	End   int
}

// Splitter produces the tokens of a message lazily in a single forward pass.
// It splits on runs of whitespace, except that a double quote at the start of
// a token opens a quoted span which forms one token regardless of internal
// whitespace. A quote anywhere else is an ordinary character.
//
// Splitting is total: every input yields some token sequence and an
// unterminated quoted span extends to the end of the input.
type Splitter struct {
	input string
	pos   int
}

// NewSplitter creates a Splitter over the given message.
//
// Postcondition: Returns a Splitter positioned before the first token.
func NewSplitter(input string) *Splitter {
	return &Splitter{input: input}
}

// Next returns the next token of the message.
//
// Postcondition: Returns (token, true) while tokens remain, then (zero, false)
// on every subsequent call.
func (s *Splitter) Next() (Token, bool) {
	for s.pos < len(s.input) {
		r, size := utf8.DecodeRuneInString(s.input[s.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		s.pos += size
	}
	if s.pos >= len(s.input) {
		return Token{}, false
	}

	start := s.pos
	if s.input[s.pos] == '"' {
		rel := strings.IndexByte(s.input[s.pos+1:], '"')
		if rel < 0 {
			// unterminated quote; the span runs to the end of the input
			tok := Token{Value: s.input[s.pos+1:], Start: start, End: len(s.input)}
			s.pos = len(s.input)
			return tok, true
		}
		closing := s.pos + 1 + rel
		tok := Token{Value: s.input[s.pos+1 : closing], Start: start, End: closing + 1}
		s.pos = closing + 1
		return tok, true
	}

	for s.pos < len(s.input) {
		r, size := utf8.DecodeRuneInString(s.input[s.pos:])
		if unicode.IsSpace(r) {
			break
		}
		s.pos += size
	}
	return Token{Value: s.input[start:s.pos], Start: start, End: s.pos}, true
}

// Tokenize collects all tokens of raw into a slice.
//
// Postcondition: Returns the full token sequence; never fails, even for
// malformed quoting.
func Tokenize(raw string) []Token {
	var tokens []Token
	splitter := NewSplitter(raw)
	for {
		tok, ok := splitter.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

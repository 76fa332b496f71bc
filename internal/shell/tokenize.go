package shell

import (
	"fmt"
	"strings"
)

// Token is one word of an input line. Quoted distinguishes a bare keyword
// (do, done, ;) from the same text supplied as data.
type Token struct {
	Text   string
	Quoted bool
}

// IsKeyword reports whether the token is the given unquoted keyword.
func (t Token) IsKeyword(word string) bool {
	return !t.Quoted && t.Text == word
}

// Tokenize splits an input line into tokens. Double and single quotes
// group characters (including whitespace and the empty string) into one
// token; a semicolon outside quotes is its own token.
func Tokenize(line string) ([]Token, error) {
	var tokens []Token
	var current strings.Builder
	inToken := false
	quoted := false
	quoteChar := byte(0)

	flush := func() {
		if inToken {
			tokens = append(tokens, Token{Text: current.String(), Quoted: quoted})
			current.Reset()
			inToken = false
			quoted = false
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]

		switch {
		case quoteChar != 0:
			if c == quoteChar {
				quoteChar = 0
			} else {
				current.WriteByte(c)
			}

		case c == '"' || c == '\'':
			quoteChar = c
			inToken = true
			quoted = true

		case c == ' ' || c == '\t':
			flush()

		case c == ';':
			flush()
			tokens = append(tokens, Token{Text: ";"})

		default:
			inToken = true
			current.WriteByte(c)
		}
	}

	if quoteChar != 0 {
		return nil, fmt.Errorf("unterminated quote in input")
	}
	flush()

	return tokens, nil
}

// texts extracts the raw text of a token slice.
func texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

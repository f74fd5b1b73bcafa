package lnxconfig

import (
	"bufio"
	"io"
	"strings"
)

// Lexer splits lnx input into classified lines
type Lexer struct {
	reader *bufio.Reader
	line   int
	// EOF flag
	eof bool
}

// NewLexer creates a new lexer from an io.Reader
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(r),
	}
}

// NextToken returns the next line from the input
func (l *Lexer) NextToken() Token {
	if l.eof {
		return Token{Type: TokenEOF, Line: l.line}
	}

	text, err := l.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		l.eof = true
		return Token{Type: TokenError, Line: l.line + 1, Err: err}
	}
	if err == io.EOF {
		l.eof = true
		// A final line without terminator still counts
		if text == "" {
			return Token{Type: TokenEOF, Line: l.line}
		}
	}

	l.line++
	text = strings.TrimSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\r")

	token := Token{Text: text, Line: l.line}

	// Only a '#' in the very first column makes a comment line
	if strings.HasPrefix(text, "#") {
		token.Type = TokenComment
		return token
	}

	keyword, _, ok := firstField(text)
	if !ok {
		token.Type = TokenBlank
		return token
	}

	token.Type = TokenDirective
	token.Keyword = keyword
	return token
}

// firstField returns the first whitespace-delimited field of s and the
// remainder after it
func firstField(s string) (string, string, bool) {
	s = strings.TrimLeft(s, " \t\v\f\r")
	if s == "" {
		return "", "", false
	}
	end := strings.IndexAny(s, " \t\v\f\r")
	if end < 0 {
		return s, "", true
	}
	return s[:end], s[end:], true
}

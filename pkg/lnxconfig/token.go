package lnxconfig

// TokenType classifies one physical line of an lnx file
type TokenType int

const (
	// TokenEOF indicates end of input
	TokenEOF TokenType = iota
	// TokenBlank is an empty or whitespace-only line
	TokenBlank
	// TokenComment is a line whose first character is '#'
	TokenComment
	// TokenDirective is any other line; Keyword holds its first field
	TokenDirective
	// TokenError indicates a read error; Err holds the cause
	TokenError
)

// Directive keywords
const (
	KeywordInterface = "interface"
	KeywordNeighbor  = "neighbor"
	KeywordRouting   = "routing"
	KeywordRoute     = "route"
	KeywordRIP       = "rip"
	KeywordTCP       = "tcp"
)

// Second-level keywords of the rip and tcp directives
const (
	KeywordAdvertiseTo           = "advertise-to"
	KeywordPeriodicUpdateRate    = "periodic-update-rate"
	KeywordRouteTimeoutThreshold = "route-timeout-threshold"
	KeywordRTOMin                = "rto-min"
	KeywordRTOMax                = "rto-max"
)

// Token represents a single line from the lexer
type Token struct {
	Type TokenType
	// Keyword is the first whitespace-delimited field of a directive line
	Keyword string
	// Text is the line without its line terminator
	Text string
	// Line is the 1-based line number
	Line int
	// Err is set for TokenError
	Err error
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenBlank:
		return "BLANK"
	case TokenComment:
		return "COMMENT"
	case TokenDirective:
		return "DIRECTIVE"
	case TokenError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

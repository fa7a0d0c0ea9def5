package qjson

// TokenKind classifies a lexical token produced by the Scanner.
type TokenKind int

const (
	TokenInvalid TokenKind = iota
	TokenLeftBrace
	TokenRightBrace
	TokenLeftBracket
	TokenRightBracket
	TokenColon
	TokenComma
	TokenString
	TokenNumber
	TokenIdent
	TokenTrue
	TokenFalse
	TokenNull
	TokenEOF
)

var tokenKindNames = map[TokenKind]string{
	TokenInvalid:      "invalid",
	TokenLeftBrace:    "{",
	TokenRightBrace:   "}",
	TokenLeftBracket:  "[",
	TokenRightBracket: "]",
	TokenColon:        ":",
	TokenComma:        ",",
	TokenString:       "string",
	TokenNumber:       "number",
	TokenIdent:        "identifier",
	TokenTrue:         "true",
	TokenFalse:        "false",
	TokenNull:         "null",
	TokenEOF:          "end of input",
}

func (k TokenKind) String() string {
	if s, ok := tokenKindNames[k]; ok {
		return s
	}
	return "invalid"
}

// Pos is a location in the input text. Line and Column are 0-based;
// Column counts runes from the start of the line.
type Pos struct {
	Offset int
	Line   int
	Column int
}

// Token is a classified lexical unit with its source span.
//
// Text holds the decoded character sequence for TokenString, the raw
// literal for TokenNumber, and the raw word for TokenIdent, TokenTrue,
// TokenFalse and TokenNull. The raw word matters for literal-word
// tokens because they are still usable as object keys, where their
// original spelling is preserved.
type Token struct {
	Kind TokenKind
	Pos  Pos
	End  int // byte offset one past the token

	Text string

	// Decoded magnitude for TokenNumber. IsInt reports whether the
	// literal was integral (no fraction, no exponent); Int is only
	// meaningful when IsInt is true.
	Num   float64
	Int   int64
	IsInt bool
}

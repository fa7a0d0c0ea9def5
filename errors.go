package qjson

import "fmt"

// ErrKind enumerates the ways a conversion can fail. Lexical kinds are
// reported by the Scanner, structural kinds by the Parser.
type ErrKind int

const (
	// lexical
	ErrUnexpectedCharacter ErrKind = iota
	ErrUnterminatedString
	ErrUnterminatedComment
	ErrInvalidEscape
	ErrInvalidNumberLiteral
	ErrInvalidMultiline

	// structural
	ErrUnexpectedToken
	ErrUnexpectedEndOfInput
	ErrTrailingContent
	ErrMaxDepthExceeded
)

var errMessages = map[ErrKind]string{
	ErrUnexpectedCharacter:  "unexpected character",
	ErrUnterminatedString:   "unterminated string",
	ErrUnterminatedComment:  "unclosed /*...*/ comment",
	ErrInvalidEscape:        "invalid escape sequence",
	ErrInvalidNumberLiteral: "invalid number literal",
	ErrInvalidMultiline:     "malformed multiline string",
	ErrUnexpectedToken:      "unexpected token",
	ErrUnexpectedEndOfInput: "unexpected end of input",
	ErrTrailingContent:      "unexpected content after top-level value",
	ErrMaxDepthExceeded:     "too many nested objects or arrays",
}

func (k ErrKind) String() string {
	if s, ok := errMessages[k]; ok {
		return s
	}
	return "unknown error"
}

// ConversionError is the terminal failure of a conversion call. Line and
// Column are 0-based (Column counts runes); Offset is a byte offset.
type ConversionError struct {
	Kind    ErrKind
	Line    int
	Column  int
	Offset  int
	Message string
}

// Error renders 1-based line and column, the way compilers report them.
// The 0-based struct fields are the wire contract.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s at line %d col %d", e.Message, e.Line+1, e.Column+1)
}

func errAt(kind ErrKind, pos Pos) *ConversionError {
	return &ConversionError{
		Kind:    kind,
		Line:    pos.Line,
		Column:  pos.Column,
		Offset:  pos.Offset,
		Message: kind.String(),
	}
}

package qjson

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Scanner turns qjson text into a forward-only token stream. It skips
// whitespace (space, tab, CR, LF and NBSP), line comments starting with
// "//" or "#", and non-nesting "/* ... */" block comments. String escapes
// are decoded during scanning, so TokenString always carries the actual
// character sequence.
type Scanner struct {
	input     string
	off       int // byte offset of the next unread byte
	line      int // 0-based line number of off
	lineStart int // byte offset of the first byte of the current line
}

// NewScanner returns a Scanner reading from input. A Scanner is a single
// forward pass; create a new one to re-read.
func NewScanner(input string) *Scanner {
	return &Scanner{input: input}
}

func (s *Scanner) pos() Pos {
	return Pos{
		Offset: s.off,
		Line:   s.line,
		Column: utf8.RuneCountInString(s.input[s.lineStart:s.off]),
	}
}

func (s *Scanner) eof() bool { return s.off >= len(s.input) }

func (s *Scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.input[s.off]
}

func (s *Scanner) peekAt(n int) byte {
	if s.off+n >= len(s.input) {
		return 0
	}
	return s.input[s.off+n]
}

// inlineSpaceLen returns the byte length of the whitespace at the front of
// p: space, tab, or the non-breaking space U+00A0. Newlines are separate.
func inlineSpaceLen(p string) int {
	if p == "" {
		return 0
	}
	if p[0] == ' ' || p[0] == '\t' {
		return 1
	}
	if len(p) > 1 && p[0] == 0xC2 && p[1] == 0xA0 {
		return 2
	}
	return 0
}

func newlineLen(p string) int {
	if p == "" {
		return 0
	}
	if p[0] == '\n' {
		return 1
	}
	if len(p) > 1 && p[0] == '\r' && p[1] == '\n' {
		return 2
	}
	return 0
}

// popNewline consumes a newline if one is next, updating the line counter.
func (s *Scanner) popNewline() bool {
	n := newlineLen(s.input[s.off:])
	if n == 0 {
		return false
	}
	s.off += n
	s.line++
	s.lineStart = s.off
	return true
}

func (s *Scanner) skipInlineSpace() {
	for {
		n := inlineSpaceLen(s.input[s.off:])
		if n == 0 {
			return
		}
		s.off += n
	}
}

// skipRestOfLine consumes up to and including the next newline.
func (s *Scanner) skipRestOfLine() {
	for !s.eof() {
		if s.popNewline() {
			return
		}
		s.off++
	}
}

// skipSpaces consumes whitespace, newlines and comments before a token.
func (s *Scanner) skipSpaces() *ConversionError {
	for !s.eof() {
		s.skipInlineSpace()
		if s.popNewline() {
			continue
		}
		c := s.peek()
		if c == '\r' {
			// lone CR, treated as whitespace
			s.off++
			continue
		}
		if c == '#' || (c == '/' && s.peekAt(1) == '/') {
			s.skipRestOfLine()
			continue
		}
		if c == '/' && s.peekAt(1) == '*' {
			open := s.pos()
			s.off += 2
			for {
				if s.eof() {
					return errAt(ErrUnterminatedComment, open)
				}
				if s.peek() == '*' && s.peekAt(1) == '/' {
					s.off += 2
					break
				}
				if !s.popNewline() {
					s.off++
				}
			}
			continue
		}
		return nil
	}
	return nil
}

// Next returns the next token, or a lexical error with the offending
// position. After the input is exhausted it keeps returning TokenEOF.
func (s *Scanner) Next() (Token, error) {
	if err := s.skipSpaces(); err != nil {
		return Token{}, err
	}
	start := s.pos()
	if s.eof() {
		return Token{Kind: TokenEOF, Pos: start, End: s.off}, nil
	}

	var kind TokenKind
	switch c := s.input[s.off]; c {
	case '{':
		kind = TokenLeftBrace
	case '}':
		kind = TokenRightBrace
	case '[':
		kind = TokenLeftBracket
	case ']':
		kind = TokenRightBracket
	case ':':
		kind = TokenColon
	case ',':
		kind = TokenComma
	case '"', '\'':
		return s.scanQuoted(c)
	case '`':
		return s.scanMultiline()
	default:
		if c == '+' || c == '-' || c == '.' || isDigit(c) {
			return s.scanNumber()
		}
		if isIdentStart(c) {
			return s.scanIdent()
		}
		return Token{}, errAt(ErrUnexpectedCharacter, start)
	}
	s.off++
	return Token{Kind: kind, Pos: start, End: s.off}, nil
}

func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isOctDigit(c byte) bool   { return c >= '0' && c <= '7' }
func isBinDigit(c byte) bool   { return c == '0' || c == '1' }
func isIdentStart(c byte) bool { return c == '_' || (c|0x20 >= 'a' && c|0x20 <= 'z') }
func isIdentChar(c byte) bool  { return isIdentStart(c) || isDigit(c) }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c|0x20 >= 'a' && c|0x20 <= 'f')
}

// scanIdent reads a bare word. The literal words of the dialect become
// their own token kinds; anything else is an identifier, usable only as an
// object key.
func (s *Scanner) scanIdent() (Token, error) {
	start := s.pos()
	begin := s.off
	for !s.eof() && isIdentChar(s.input[s.off]) {
		s.off++
	}
	word := s.input[begin:s.off]
	return Token{Kind: literalWordKind(word), Pos: start, End: s.off, Text: word}, nil
}

// literalWordKind classifies the dialect's literal words. The first letter
// may be either case; the remainder must be all lower or all upper, so
// "true", "True" and "TRUE" all match. "yes"/"on" mean true, "no"/"off"
// mean false.
func literalWordKind(w string) TokenKind {
	match := func(word string) bool {
		if len(w) != len(word) {
			return false
		}
		if w[0]|0x20 != word[0] {
			return false
		}
		rest := w[1:]
		return rest == word[1:] || rest == strings.ToUpper(word[1:])
	}
	switch {
	case match("true"), match("yes"), match("on"):
		return TokenTrue
	case match("false"), match("no"), match("off"):
		return TokenFalse
	case match("null"):
		return TokenNull
	}
	return TokenIdent
}

// scanQuoted reads a single-line string delimited by quote, decoding
// escape sequences as it goes.
func (s *Scanner) scanQuoted(quote byte) (Token, error) {
	start := s.pos()
	s.off++ // opening quote
	var b strings.Builder
	for {
		if s.eof() || newlineLen(s.input[s.off:]) > 0 {
			return Token{}, errAt(ErrUnterminatedString, start)
		}
		c := s.input[s.off]
		if c == quote {
			s.off++
			return Token{Kind: TokenString, Pos: start, End: s.off, Text: b.String()}, nil
		}
		if c == '\\' {
			if err := s.scanEscape(&b); err != nil {
				return Token{}, err
			}
			continue
		}
		if c < 0x20 && c != '\t' {
			return Token{}, errAt(ErrUnexpectedCharacter, s.pos())
		}
		r, size := utf8.DecodeRuneInString(s.input[s.off:])
		if r == utf8.RuneError && size == 1 {
			return Token{}, errAt(ErrUnexpectedCharacter, s.pos())
		}
		b.WriteString(s.input[s.off : s.off+size])
		s.off += size
	}
}

// scanEscape decodes one backslash escape into b. The cursor is on the
// backslash.
func (s *Scanner) scanEscape(b *strings.Builder) *ConversionError {
	escPos := s.pos()
	s.off++ // backslash
	if s.eof() {
		return errAt(ErrInvalidEscape, escPos)
	}
	c := s.input[s.off]
	s.off++
	switch c {
	case '"', '\'', '\\', '/':
		b.WriteByte(c)
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'u':
		r1, err := s.scanHex4(escPos)
		if err != nil {
			return err
		}
		if !utf16.IsSurrogate(r1) {
			b.WriteRune(r1)
			break
		}
		// a high surrogate may combine with an immediately following
		// \uXXXX low surrogate; anything unpaired becomes U+FFFD
		if r1 >= 0xDC00 || !strings.HasPrefix(s.input[s.off:], `\u`) {
			b.WriteRune(utf8.RuneError)
			break
		}
		s.off += 2
		r2, err := s.scanHex4(escPos)
		if err != nil {
			return err
		}
		if r := utf16.DecodeRune(r1, r2); r != utf8.RuneError {
			b.WriteRune(r)
		} else {
			b.WriteRune(utf8.RuneError)
			if utf16.IsSurrogate(r2) {
				b.WriteRune(utf8.RuneError)
			} else {
				b.WriteRune(r2)
			}
		}
	default:
		return errAt(ErrInvalidEscape, escPos)
	}
	return nil
}

func (s *Scanner) scanHex4(escPos Pos) (rune, *ConversionError) {
	if s.off+4 > len(s.input) {
		return 0, errAt(ErrInvalidEscape, escPos)
	}
	n, err := strconv.ParseUint(s.input[s.off:s.off+4], 16, 32)
	if err != nil {
		return 0, errAt(ErrInvalidEscape, escPos)
	}
	s.off += 4
	return rune(n), nil
}

// scanMultiline reads a backtick multiline string. The opening backtick
// must be the first non-whitespace character on its line; the whitespace
// before it is the margin that every following line of the literal must
// repeat. The backtick is followed by a newline specifier, the two-character
// sequence \n or the four-character sequence \r\n, which selects the line
// separator of the decoded value. An unescaped backtick ends the literal;
// `\ produces a literal backtick.
func (s *Scanner) scanMultiline() (Token, error) {
	start := s.pos()
	margin := s.input[s.lineStart:s.off]
	for i := 0; i < len(margin); {
		n := inlineSpaceLen(margin[i:])
		if n == 0 {
			return Token{}, errAt(ErrInvalidMultiline, Pos{Offset: s.lineStart + i, Line: s.line, Column: utf8.RuneCountInString(margin[:i])})
		}
		i += n
	}
	s.off++ // opening backtick
	s.skipInlineSpace()

	var sep string
	switch {
	case strings.HasPrefix(s.input[s.off:], `\n`):
		sep = "\n"
		s.off += 2
	case strings.HasPrefix(s.input[s.off:], `\r\n`):
		sep = "\r\n"
		s.off += 4
	default:
		return Token{}, errAt(ErrInvalidMultiline, start)
	}
	s.skipInlineSpace()
	if !s.popNewline() {
		// only a line comment may follow the specifier
		if c := s.peek(); c == '#' || (c == '/' && s.peekAt(1) == '/') {
			s.skipRestOfLine()
		} else {
			return Token{}, errAt(ErrInvalidMultiline, start)
		}
	}

	var b strings.Builder
	if s.eof() {
		return Token{}, errAt(ErrUnterminatedString, start)
	}
	if !s.consumeMargin(margin) {
		return Token{}, errAt(ErrInvalidMultiline, s.pos())
	}
	for {
		if s.eof() {
			return Token{}, errAt(ErrUnterminatedString, start)
		}
		if s.popNewline() {
			if s.eof() {
				return Token{}, errAt(ErrUnterminatedString, start)
			}
			if !s.consumeMargin(margin) {
				return Token{}, errAt(ErrInvalidMultiline, s.pos())
			}
			// a backtick right after the margin closes the literal with no
			// trailing separator
			if s.peek() == '`' && s.peekAt(1) != '\\' {
				s.off++
				return Token{Kind: TokenString, Pos: start, End: s.off, Text: b.String()}, nil
			}
			b.WriteString(sep)
			continue
		}
		c := s.input[s.off]
		if c == '`' {
			if s.peekAt(1) == '\\' {
				b.WriteByte('`')
				s.off += 2
				continue
			}
			s.off++
			return Token{Kind: TokenString, Pos: start, End: s.off, Text: b.String()}, nil
		}
		if c < 0x20 {
			// control characters are kept verbatim; the serializer escapes them
			b.WriteByte(c)
			s.off++
			continue
		}
		r, size := utf8.DecodeRuneInString(s.input[s.off:])
		if r == utf8.RuneError && size == 1 {
			return Token{}, errAt(ErrUnexpectedCharacter, s.pos())
		}
		b.WriteString(s.input[s.off : s.off+size])
		s.off += size
	}
}

func (s *Scanner) consumeMargin(margin string) bool {
	if !strings.HasPrefix(s.input[s.off:], margin) {
		return false
	}
	s.off += len(margin)
	return true
}

// scanNumber reads a relaxed numeric literal: optional leading sign,
// optional '_' digit separators, 0x/0b/0o prefixes, a bare leading zero
// meaning octal, and decimal forms with a missing integer part (".5") or
// a missing fraction ("5."). The raw text is preserved in the token; the
// decoded magnitude is what the serializer will re-emit.
func (s *Scanner) scanNumber() (Token, error) {
	start := s.pos()
	begin := s.off
	fail := func() (Token, error) {
		return Token{}, errAt(ErrInvalidNumberLiteral, start)
	}

	neg := false
	if c := s.input[s.off]; c == '+' || c == '-' {
		neg = c == '-'
		s.off++
		if s.eof() {
			return fail()
		}
	}

	finishInt := func(digits string, base int) (Token, error) {
		if digits == "" || s.identFollows() {
			return fail()
		}
		n, err := strconv.ParseInt(digits, base, 64)
		if err != nil {
			return fail()
		}
		if neg {
			n = -n
		}
		return Token{
			Kind:  TokenNumber,
			Pos:   start,
			End:   s.off,
			Text:  s.input[begin:s.off],
			Num:   float64(n),
			Int:   n,
			IsInt: true,
		}, nil
	}

	if s.peek() == '0' {
		switch c := s.peekAt(1); {
		case c == 'x' || c == 'X':
			s.off += 2
			return s.scanPrefixedInt(isHexDigit, 16, finishInt, fail)
		case c == 'b' || c == 'B':
			s.off += 2
			return s.scanPrefixedInt(isBinDigit, 2, finishInt, fail)
		case c == 'o' || c == 'O':
			s.off += 2
			return s.scanPrefixedInt(isOctDigit, 8, finishInt, fail)
		case c == '_' || isDigit(c):
			// a leading zero makes the literal octal, classic qjson rule
			s.off++
			return s.scanPrefixedInt(isOctDigit, 8, finishInt, fail)
		}
	}

	intDigits, ok := s.digitRun(isDigit)
	if !ok {
		return fail()
	}
	isFloat := false
	if s.peek() == '.' {
		s.off++
		isFloat = true
		frac, ok := s.digitRun(isDigit)
		if !ok {
			return fail()
		}
		if intDigits == "" && frac == "" {
			return fail()
		}
	} else if intDigits == "" {
		return fail()
	}
	if c := s.peek(); c == 'e' || c == 'E' {
		s.off++
		isFloat = true
		if c := s.peek(); c == '+' || c == '-' {
			s.off++
		}
		exp, ok := s.digitRun(isDigit)
		if !ok || exp == "" {
			return fail()
		}
	}
	if s.identFollows() {
		return fail()
	}

	raw := s.input[begin:s.off]
	if !isFloat {
		return finishInt(intDigits, 10)
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, "_", ""), 64)
	if err != nil {
		return fail()
	}
	return Token{Kind: TokenNumber, Pos: start, End: s.off, Text: raw, Num: f}, nil
}

func (s *Scanner) scanPrefixedInt(valid func(byte) bool, base int, finish func(string, int) (Token, error), fail func() (Token, error)) (Token, error) {
	// one underscore may separate the prefix from the digits
	if s.peek() == '_' && valid(s.peekAt(1)) {
		s.off++
	}
	digits, ok := s.digitRun(valid)
	if !ok {
		return fail()
	}
	return finish(digits, base)
}

// digitRun consumes a run of digits with optional single '_' separators
// between digits, returning the digits with separators removed. ok is
// false when a separator is dangling or doubled.
func (s *Scanner) digitRun(valid func(byte) bool) (string, bool) {
	var b strings.Builder
	for !s.eof() {
		c := s.input[s.off]
		if valid(c) {
			b.WriteByte(c)
			s.off++
			continue
		}
		if c == '_' {
			if b.Len() == 0 || !valid(s.peekAt(1)) {
				return "", false
			}
			s.off++
			continue
		}
		break
	}
	return b.String(), true
}

// identFollows reports whether the byte after a number literal would glue
// onto it, as in "123abc".
func (s *Scanner) identFollows() bool {
	return !s.eof() && isIdentChar(s.input[s.off])
}

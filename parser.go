package qjson

// DefaultMaxDepth bounds object/array nesting so that pathological input
// fails cleanly instead of exhausting the call stack.
const DefaultMaxDepth = 200

// Parser drives a Scanner and builds a Value tree with the dialect's
// lenient grammar: unquoted keys, trailing commas, literal words. The
// first lexical or structural failure aborts the parse; no partial tree
// is returned.
type Parser struct {
	sc       *Scanner
	tok      Token
	maxDepth int
	depth    int
}

// NewParser returns a Parser over input with the default nesting limit.
func NewParser(input string) *Parser {
	return &Parser{sc: NewScanner(input), maxDepth: DefaultMaxDepth}
}

// SetMaxDepth overrides the nesting limit. A non-positive n restores the
// default.
func (p *Parser) SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	p.maxDepth = n
}

func (p *Parser) advance() error {
	tok, err := p.sc.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// Parse parses exactly one top-level value. Content after the value other
// than whitespace and comments is an error.
func (p *Parser) Parse() (Value, error) {
	if err := p.advance(); err != nil {
		return Value{}, err
	}
	v, err := p.parseValue()
	if err != nil {
		return Value{}, err
	}
	if p.tok.Kind != TokenEOF {
		return Value{}, errAt(ErrTrailingContent, p.tok.Pos)
	}
	return v, nil
}

func (p *Parser) parseValue() (Value, error) {
	switch p.tok.Kind {
	case TokenLeftBrace:
		return p.parseObject()
	case TokenLeftBracket:
		return p.parseArray()
	case TokenString:
		v := Value{Kind: KindString, Str: p.tok.Text}
		return v, p.advance()
	case TokenNumber:
		v := Value{
			Kind:  KindNumber,
			Raw:   p.tok.Text,
			Num:   p.tok.Num,
			Int:   p.tok.Int,
			IsInt: p.tok.IsInt,
		}
		return v, p.advance()
	case TokenTrue:
		return Value{Kind: KindBool, Bool: true}, p.advance()
	case TokenFalse:
		return Value{Kind: KindBool}, p.advance()
	case TokenNull:
		return Value{Kind: KindNull}, p.advance()
	case TokenEOF:
		return Value{}, errAt(ErrUnexpectedEndOfInput, p.tok.Pos)
	default:
		return Value{}, errAt(ErrUnexpectedToken, p.tok.Pos)
	}
}

func (p *Parser) enter(open Pos) error {
	if p.depth >= p.maxDepth {
		return errAt(ErrMaxDepthExceeded, open)
	}
	p.depth++
	return nil
}

func (p *Parser) parseObject() (Value, error) {
	if err := p.enter(p.tok.Pos); err != nil {
		return Value{}, err
	}
	defer func() { p.depth-- }()
	if err := p.advance(); err != nil { // past '{'
		return Value{}, err
	}

	obj := Value{Kind: KindObject}
	var index map[string]int
	for {
		if p.tok.Kind == TokenRightBrace {
			return obj, p.advance()
		}
		if p.tok.Kind == TokenEOF {
			return Value{}, errAt(ErrUnexpectedEndOfInput, p.tok.Pos)
		}

		var key string
		switch p.tok.Kind {
		case TokenString, TokenIdent, TokenTrue, TokenFalse, TokenNull:
			// literal words keep their original spelling as keys
			key = p.tok.Text
		default:
			return Value{}, errAt(ErrUnexpectedToken, p.tok.Pos)
		}
		if err := p.advance(); err != nil {
			return Value{}, err
		}
		if p.tok.Kind != TokenColon {
			if p.tok.Kind == TokenEOF {
				return Value{}, errAt(ErrUnexpectedEndOfInput, p.tok.Pos)
			}
			return Value{}, errAt(ErrUnexpectedToken, p.tok.Pos)
		}
		if err := p.advance(); err != nil {
			return Value{}, err
		}
		val, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}

		// duplicate key: the last value wins but the member stays at the
		// first occurrence's position
		if i, ok := index[key]; ok {
			obj.Members[i].Value = val
		} else {
			if index == nil {
				index = make(map[string]int)
			}
			index[key] = len(obj.Members)
			obj.Members = append(obj.Members, Member{Key: key, Value: val})
		}

		switch p.tok.Kind {
		case TokenComma:
			if err := p.advance(); err != nil {
				return Value{}, err
			}
		case TokenRightBrace:
			// closed on the next iteration
		case TokenEOF:
			return Value{}, errAt(ErrUnexpectedEndOfInput, p.tok.Pos)
		default:
			return Value{}, errAt(ErrUnexpectedToken, p.tok.Pos)
		}
	}
}

func (p *Parser) parseArray() (Value, error) {
	if err := p.enter(p.tok.Pos); err != nil {
		return Value{}, err
	}
	defer func() { p.depth-- }()
	if err := p.advance(); err != nil { // past '['
		return Value{}, err
	}

	arr := Value{Kind: KindArray}
	for {
		if p.tok.Kind == TokenRightBracket {
			return arr, p.advance()
		}
		if p.tok.Kind == TokenEOF {
			return Value{}, errAt(ErrUnexpectedEndOfInput, p.tok.Pos)
		}

		v, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		arr.Items = append(arr.Items, v)

		switch p.tok.Kind {
		case TokenComma:
			if err := p.advance(); err != nil {
				return Value{}, err
			}
		case TokenRightBracket:
			// closed on the next iteration
		case TokenEOF:
			return Value{}, errAt(ErrUnexpectedEndOfInput, p.tok.Pos)
		default:
			return Value{}, errAt(ErrUnexpectedToken, p.tok.Pos)
		}
	}
}

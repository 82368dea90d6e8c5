package toml

import (
	"fmt"
	"strconv"
	"strings"
)

// parser turns tokens into a tree of map[string]any
// Values are string, int64, uint64 (positive integers above MaxInt64), float64, bool,
// []any for arrays, map[string]any for [table] and []map[string]any for [[table]]
type parser struct {
	lex  *lexer
	cur  token
	peek token

	root    map[string]any
	current map[string]any
}

func newParser(input []byte) *parser {
	p := &parser{lex: newLexer(input), root: make(map[string]any)}
	p.current = p.root
	p.advance()
	p.advance()
	return p
}

// Parse reads a whole document
func Parse(input []byte) (map[string]any, error) {
	return newParser(input).parse()
}

func (p *parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.next()
	for p.peek.typ == tokComment {
		p.peek = p.lex.next()
	}
}

func (p *parser) errorf(at token, format string, args ...any) error {
	return &ParseError{Line: at.line, Col: at.col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parse() (map[string]any, error) {
	for p.cur.typ != tokEOF {
		switch p.cur.typ {
		case tokNewline:
			p.advance()
			continue
		case tokLBracket:
			if err := p.parseHeader(); err != nil {
				return nil, err
			}
		case tokIdent, tokString:
			if err := p.parseKeyValue(); err != nil {
				return nil, err
			}
		case tokError:
			return nil, p.errorf(p.cur, "%s", p.cur.literal)
		default:
			return nil, p.errorf(p.cur, "unexpected %s", p.cur)
		}
		if err := p.expectLineEnd(); err != nil {
			return nil, err
		}
	}
	return p.root, nil
}

func (p *parser) expectLineEnd() error {
	switch p.cur.typ {
	case tokNewline:
		p.advance()
		return nil
	case tokEOF:
		return nil
	case tokError:
		return p.errorf(p.cur, "%s", p.cur.literal)
	}
	return p.errorf(p.cur, "expected end of line, got %s", p.cur)
}

// parseHeader handles [name] and [[name]]
func (p *parser) parseHeader() error {
	open := p.cur
	array := p.peek.typ == tokLBracket
	if array {
		p.advance()
	}
	p.advance()

	if p.cur.typ != tokIdent && p.cur.typ != tokString {
		return p.errorf(p.cur, "expected table name, got %s", p.cur)
	}
	name := p.cur.literal
	p.advance()

	closers := 1
	if array {
		closers = 2
	}
	for range closers {
		if p.cur.typ != tokRBracket {
			return p.errorf(p.cur, "expected ']' closing table %q, got %s", name, p.cur)
		}
		p.advance()
	}

	existing, exists := p.root[name]
	table := make(map[string]any)
	switch {
	case array && !exists:
		p.root[name] = []map[string]any{table}
	case array:
		list, ok := existing.([]map[string]any)
		if !ok {
			return p.errorf(open, "%q is not an array of tables", name)
		}
		p.root[name] = append(list, table)
	case exists:
		return p.errorf(open, "table %q already defined", name)
	default:
		p.root[name] = table
	}
	p.current = table
	return nil
}

func (p *parser) parseKeyValue() error {
	key := p.cur
	p.advance()
	if p.cur.typ != tokEqual {
		return p.errorf(p.cur, "expected '=' after key %q, got %s", key.literal, p.cur)
	}
	p.advance()

	val, err := p.parseValue()
	if err != nil {
		return err
	}
	if _, dup := p.current[key.literal]; dup {
		return p.errorf(key, "duplicate key %q", key.literal)
	}
	p.current[key.literal] = val
	return nil
}

func (p *parser) parseValue() (any, error) {
	tok := p.cur
	switch tok.typ {
	case tokString:
		p.advance()
		return tok.literal, nil
	case tokInteger:
		p.advance()
		return parseInteger(tok)
	case tokFloat:
		p.advance()
		f, err := strconv.ParseFloat(strings.ReplaceAll(tok.literal, "_", ""), 64)
		if err != nil {
			return nil, &ParseError{Line: tok.line, Col: tok.col, Msg: fmt.Sprintf("invalid float %q", tok.literal)}
		}
		return f, nil
	case tokBool:
		p.advance()
		return tok.literal == "true", nil
	case tokLBracket:
		return p.parseArray()
	case tokError:
		return nil, p.errorf(tok, "%s", tok.literal)
	}
	return nil, p.errorf(tok, "expected value, got %s", tok)
}

func (p *parser) parseArray() ([]any, error) {
	open := p.cur
	p.advance()
	arr := make([]any, 0)
	for {
		for p.cur.typ == tokNewline {
			p.advance()
		}
		if p.cur.typ == tokRBracket {
			p.advance()
			return arr, nil
		}
		if p.cur.typ == tokEOF {
			return nil, p.errorf(open, "unterminated array")
		}

		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)

		for p.cur.typ == tokNewline {
			p.advance()
		}
		switch p.cur.typ {
		case tokComma:
			p.advance()
		case tokRBracket:
		case tokEOF:
			return nil, p.errorf(open, "unterminated array")
		default:
			return nil, p.errorf(p.cur, "expected ',' or ']' in array, got %s", p.cur)
		}
	}
}

// parseInteger accepts decimal and 0x/0o/0b forms with '_' separators
// Positive decimals beyond int64 are kept as uint64 so full 64-bit seeds survive
func parseInteger(tok token) (any, error) {
	lit := strings.ReplaceAll(tok.literal, "_", "")
	digits := strings.TrimLeft(lit, "+-")
	base := 10
	if len(digits) > 2 && digits[0] == '0' {
		switch digits[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 10 {
			if digits != lit {
				return nil, &ParseError{Line: tok.line, Col: tok.col, Msg: fmt.Sprintf("sign not allowed on %q", tok.literal)}
			}
			digits = digits[2:]
		}
	}
	if base == 10 && len(digits) > 1 && digits[0] == '0' {
		return nil, &ParseError{Line: tok.line, Col: tok.col, Msg: fmt.Sprintf("leading zero in %q", tok.literal)}
	}

	if base == 10 {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return i, nil
		}
		if lit[0] != '-' {
			if u, err := strconv.ParseUint(digits, 10, 64); err == nil {
				return u, nil
			}
		}
		return nil, &ParseError{Line: tok.line, Col: tok.col, Msg: fmt.Sprintf("invalid integer %q", tok.literal)}
	}

	u, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return nil, &ParseError{Line: tok.line, Col: tok.col, Msg: fmt.Sprintf("invalid integer %q", tok.literal)}
	}
	if u <= 1<<63-1 {
		return int64(u), nil
	}
	return u, nil
}

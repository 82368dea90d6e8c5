package toml

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// lexer splits a TOML document into tokens
// Dotted keys and inline tables are outside the supported subset and lex as errors
type lexer struct {
	input []byte
	pos   int
	line  int
	col   int

	// position of the first rune of the token being read
	startLine int
	startCol  int
}

func newLexer(input []byte) *lexer {
	return &lexer{input: input, line: 1}
}

// next returns the next token in the stream
func (l *lexer) next() token {
	l.skipWhitespace()
	l.startLine, l.startCol = l.line, l.col+1

	if l.pos >= len(l.input) {
		return l.emit(tokEOF, "")
	}

	ch := l.peek()
	switch ch {
	case '\n':
		l.advance()
		return l.emit(tokNewline, "\n")
	case '#':
		return l.readComment()
	case '=':
		l.advance()
		return l.emit(tokEqual, "=")
	case ',':
		l.advance()
		return l.emit(tokComma, ",")
	case '[':
		l.advance()
		return l.emit(tokLBracket, "[")
	case ']':
		l.advance()
		return l.emit(tokRBracket, "]")
	case '"':
		return l.readString()
	case '{', '}':
		l.advance()
		return l.emit(tokError, "inline tables are not supported")
	case '.':
		l.advance()
		return l.emit(tokError, "dotted keys are not supported")
	}

	if isDigit(ch) || isAlpha(ch) || ch == '_' || ch == '+' || ch == '-' {
		return l.readBareOrNumber()
	}

	l.advance()
	return l.emit(tokError, fmt.Sprintf("unexpected character %q", ch))
}

func (l *lexer) emit(typ tokenType, literal string) token {
	return token{typ: typ, literal: literal, line: l.startLine, col: l.startCol}
}

func (l *lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, w := utf8.DecodeRune(l.input[l.pos:])
	l.pos += w
	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return r
}

func (l *lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.input[l.pos:])
	return r
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.advance()
		default:
			return
		}
	}
}

func (l *lexer) readComment() token {
	l.advance()
	start := l.pos
	for l.pos < len(l.input) && l.peek() != '\n' {
		l.advance()
	}
	return l.emit(tokComment, string(l.input[start:l.pos]))
}

func (l *lexer) readString() token {
	l.advance()
	var b strings.Builder
	for l.pos < len(l.input) {
		ch := l.advance()
		switch ch {
		case '\n':
			return l.emit(tokError, "newline in basic string")
		case '"':
			return l.emit(tokString, b.String())
		case '\\':
			esc := l.advance()
			switch esc {
			case '"', '\\':
				b.WriteRune(esc)
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				return l.emit(tokError, fmt.Sprintf("unsupported escape \\%c", esc))
			}
		default:
			b.WriteRune(ch)
		}
	}
	return l.emit(tokError, "unterminated string")
}

// readBareOrNumber reads a run of key or number characters and classifies it
func (l *lexer) readBareOrNumber() token {
	start := l.pos
	first := l.peek()
	numeric := isDigit(first) || first == '+' || first == '-'

	for l.pos < len(l.input) {
		ch := l.peek()
		if isAlpha(ch) || isDigit(ch) || ch == '_' || ch == '-' || ch == '+' || (ch == '.' && numeric) {
			l.advance()
			continue
		}
		break
	}
	lit := string(l.input[start:l.pos])

	if lit == "true" || lit == "false" {
		return l.emit(tokBool, lit)
	}
	if !numeric {
		return l.emit(tokIdent, lit)
	}

	unsigned := strings.TrimLeft(lit, "+-")
	if len(unsigned) > 2 && unsigned[0] == '0' && strings.ContainsRune("xXoObB", rune(unsigned[1])) {
		return l.emit(tokInteger, lit)
	}
	for _, r := range unsigned {
		if isAlpha(r) && r != 'e' && r != 'E' {
			return l.emit(tokIdent, lit)
		}
	}
	if strings.ContainsAny(unsigned, ".eE") {
		return l.emit(tokFloat, lit)
	}
	return l.emit(tokInteger, lit)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

package toml

import "fmt"

// tokenType is the lexical class of a token
type tokenType int

const (
	tokError tokenType = iota
	tokEOF
	tokComment

	tokIdent   // bare key
	tokString  // "quoted"
	tokInteger // 123, 0x7b, 18446744073709551615
	tokFloat   // 1.5, 1e-4
	tokBool    // true/false

	tokEqual    // =
	tokComma    // ,
	tokLBracket // [
	tokRBracket // ]
	tokNewline  // \n
)

// token is a lexeme with its 1-based source position
type token struct {
	typ     tokenType
	literal string
	line    int
	col     int
}

func (t token) String() string {
	switch t.typ {
	case tokEOF:
		return "end of input"
	case tokError:
		return t.literal
	case tokNewline:
		return "newline"
	}
	if len(t.literal) > 20 {
		return fmt.Sprintf("%q...", t.literal[:20])
	}
	return fmt.Sprintf("%q", t.literal)
}

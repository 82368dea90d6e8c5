package toml

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is wrapped by every *ParseError
	ErrSyntax = errors.New("toml: syntax error")

	// ErrDecode reports a value that cannot be stored in the target field
	ErrDecode = errors.New("toml: cannot decode")

	// ErrEncode reports a value Marshal cannot represent
	ErrEncode = errors.New("toml: cannot encode")
)

// ParseError locates a syntax error in the input
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("toml: line %d col %d: %s", e.Line, e.Col, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrSyntax }

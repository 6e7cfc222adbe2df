package syntax

import "fmt"

// LexError reports an unknown character encountered while tokenizing
// pattern text.
type LexError struct {
	Pos  Position
	Char rune
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d: unexpected character %q", e.Pos.Begin, e.Char)
}

// ParseError reports a structural error in pattern text: an unmatched
// delimiter, an empty group, a binary operator with a missing operand,
// or an unexpected token.
type ParseError struct {
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Pos.Begin, e.Pos.End, e.Message)
}

// throwErrorf raises a ParseError via panic, to be recovered at the top
// of Parser.Parse.
func throwErrorf(begin, end int, format string, args ...interface{}) {
	panic(&ParseError{Pos: Position{Begin: begin, End: end}, Message: fmt.Sprintf(format, args...)})
}

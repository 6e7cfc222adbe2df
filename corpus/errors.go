package corpus

import "fmt"

// InputError reports a malformed sequence line: a missing -2 terminator
// or a stray token after one.
type InputError struct {
	Line    int
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("corpus: line %d: %s", e.Line, e.Message)
}

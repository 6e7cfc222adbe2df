package variable

import "fmt"

// DomainError reports that a variable's domain resolved to the empty
// set at enumeration time. It is not fatal: the owning pattern is
// reported as an error alongside any patterns that did evaluate.
type DomainError struct {
	Variable string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("variable: domain of %q is empty", e.Variable)
}

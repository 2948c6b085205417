// Package errs aggregates errors of multi-step teardowns.
package errs

import "strings"

// List wraps errors that might occur when multiple close steps fail.
type List []error

func (e List) Error() string {
	s := make([]string, 0, len(e))
	for _, se := range e {
		s = append(s, se.Error())
	}
	return strings.Join(s, ",")
}

// Unwrap allows errors.Is and errors.As to match any error of the list.
func (e List) Unwrap() []error {
	return e
}

// Add appends non-nil errors.
func (e *List) Add(errs ...error) {
	for _, err := range errs {
		if err != nil {
			*e = append(*e, err)
		}
	}
}

// Ret returns untyped nil if error list is empty.
func (e List) Ret() error {
	if len(e) > 0 {
		return e
	}
	return nil
}

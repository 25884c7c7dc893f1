package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrCartEmpty is the explicit "no cart" outcome of snapshot-dependent
// operations. It is a business result, not an infrastructure fault.
var ErrCartEmpty = errors.New("cart is empty")

// ValidationError rejects a request before any store mutation happens.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, reason := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, reason))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) add(field, reason string) {
	e.Fields[field] = reason
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Package errors defines domain error values with stable codes that
// handlers can map onto HTTP responses.
package errors

// DomainError is an application-level error with a machine-readable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

package scheduling

import "fmt"

// Kind classifies an operation failure so the transport layer can pick a
// status code without parsing messages.
type Kind int

const (
	KindInvalid Kind = iota + 1
	KindUnauthorized
	KindNotFound
	KindConflict
	KindInternal
)

// Error is the failure result of a scheduling operation. Every expected
// business condition surfaces as one of these; storage errors are
// wrapped into KindInternal at the operation boundary.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func invalid(msg string) *Error      { return &Error{Kind: KindInvalid, Message: msg} }
func unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }
func notFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func conflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }

func internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the Kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindInternal
}

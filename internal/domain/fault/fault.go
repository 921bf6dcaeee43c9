// Package fault defines the typed errors the domain surfaces to the HTTP
// boundary. Failure kinds form a closed set, so instead of an error class
// hierarchy there is a single Error carrying an explicit Kind that the
// boundary switches on to pick a status code.
package fault

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
)

// Kind identifies the category of a domain failure.
type Kind int

const (
	// KindNotFound means a referenced entity (customer, restaurant, zone,
	// order) does not exist.
	KindNotFound Kind = iota + 1
	// KindValidation means the request failed a business-level check and
	// carries per-field messages.
	KindValidation
)

// FieldError describes a single failed validation check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the domain failure type. Exactly one Kind is set; Resource is
// populated for KindNotFound and Fields for KindValidation.
type Error struct {
	Kind     Kind
	Resource string
	Message  string
	Fields   []FieldError
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("%s not found", e.Resource)
	case KindValidation:
		msgs := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			msgs[i] = f.Field + ": " + f.Message
		}
		return e.Message + " [" + strings.Join(msgs, "; ") + "]"
	default:
		return e.Message
	}
}

// NotFound returns a KindNotFound error for the named resource.
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Resource: resource}
}

// Validation returns a KindValidation error with the given field errors.
func Validation(message string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// From unwraps err into a *Error if one is present in its chain.
func From(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// IsNotFound reports whether err is a KindNotFound domain error.
func IsNotFound(err error) bool {
	fe, ok := From(err)
	return ok && fe.Kind == KindNotFound
}

// IsValidation reports whether err is a KindValidation domain error.
func IsValidation(err error) bool {
	fe, ok := From(err)
	return ok && fe.Kind == KindValidation
}

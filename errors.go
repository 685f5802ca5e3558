// errors.go - Typed error kinds carrying the offending page identity
package gomdf

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/wilhasse/go-mdf/format"
)

// Kind classifies a failure.
type Kind int

const (
	KindFileUnavailable Kind = iota + 1
	KindOutOfBounds
	KindCorruptPage
	KindCorruptIndex
	KindIAMChainBroken
	KindSchemaIncomplete
	KindUnknownTable
	KindUnknownFile
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindFileUnavailable:
		return "FileUnavailable"
	case KindOutOfBounds:
		return "OutOfBounds"
	case KindCorruptPage:
		return "CorruptPage"
	case KindCorruptIndex:
		return "CorruptIndex"
	case KindIAMChainBroken:
		return "IAMChainBroken"
	case KindSchemaIncomplete:
		return "SchemaIncomplete"
	case KindUnknownTable:
		return "UnknownTable"
	case KindUnknownFile:
		return "UnknownFile"
	case KindCancelled:
		return "Cancelled"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the library's error type: a kind, the page where the failure was
// observed, the object involved when known, and the wrapped cause.
type Error struct {
	Kind   Kind
	Page   format.PageID
	Object uint32
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if !e.Page.IsNull() || e.Kind == KindCorruptPage || e.Kind == KindOutOfBounds {
		msg += fmt.Sprintf(" page %s", e.Page)
	}
	if e.Object != 0 {
		msg += fmt.Sprintf(" object %d", e.Object)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// newError wraps a cause with a kind and page identity; a non-nil cause is
// wrapped with a stack trace.
func newError(kind Kind, page format.PageID, object uint32, cause error) *Error {
	if cause != nil {
		cause = errors.WithStack(cause)
	}
	return &Error{Kind: kind, Page: page, Object: object, Err: cause}
}

func errorf(kind Kind, page format.PageID, object uint32, msgFormat string, args ...interface{}) *Error {
	return &Error{Kind: kind, Page: page, Object: object, Err: errors.Errorf(msgFormat, args...)}
}

// IsKind reports whether any error in the chain is an *Error of the given
// kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

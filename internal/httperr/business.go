package httperr

import "errors"

type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
)

// BusinessError is a described failure of a domain rule. Code is stable and
// machine readable, Message is meant for the end user.
type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func newBusiness(kind Kind, code, message string) error {
	return BusinessError{Kind: kind, Code: code, Message: message}
}

func ErrValidation(code, message string) error {
	return newBusiness(KindValidation, code, message)
}

func ErrNotFound(code, message string) error {
	return newBusiness(KindNotFound, code, message)
}

func ErrConflict(code, message string) error {
	return newBusiness(KindConflict, code, message)
}

func ErrUnauthorized(code, message string) error {
	return newBusiness(KindUnauthorized, code, message)
}

// ErrBusiness builds a conflict with no user message.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

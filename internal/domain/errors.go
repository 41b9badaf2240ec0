package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking
// infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
	ErrInternal     = errors.New("internal error")

	// Registration and confirmation workflow errors.
	ErrInvalidPhoneNumber  = errors.New("invalid phone number")
	ErrEmailInUse          = errors.New("email already in use")
	ErrInvalidCodeToken    = errors.New("invalid verification code or token")
	ErrAlreadyVerified     = errors.New("account already verified")
	ErrExpiredConfirmation = errors.New("confirmation url expired")
)

// Classified reports whether err wraps one of the domain sentinels, i.e. a
// service already labelled it for the transport layer. Unclassified errors
// must not cross the service boundary as-is.
func Classified(err error) bool {
	for _, sentinel := range []error{
		ErrNotFound, ErrConflict, ErrUnauthorized, ErrForbidden, ErrBadRequest,
		ErrInvalidPhoneNumber, ErrEmailInUse, ErrInvalidCodeToken,
		ErrAlreadyVerified, ErrExpiredConfirmation,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

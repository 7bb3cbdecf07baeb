package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mercadorenta/rentas-client/internal/model"
)

// Kind tags every transport failure with the branch the UI must take.
// Classification happens once, at the HTTP boundary; everything above
// switches on the kind instead of poking at raw payloads.
type Kind uint8

const (
	KindUnknown Kind = iota
	// KindStaleCredential: 401/422 while no token is held locally.
	// With a token present the same statuses classify as KindUnknown:
	// the legacy client trusts local token presence as a weak validity
	// signal. Preserved for session compat; flagged for product review.
	KindStaleCredential
	// KindEligibility: 403 with code PROFILE_INCOMPLETE; recoverable via
	// the gate modal.
	KindEligibility
	// KindAdminForbidden: 403 with code ADMIN_FORBIDDEN; sticky for the
	// session.
	KindAdminForbidden
	// KindAuthorization: plain 403.
	KindAuthorization
	// KindConflict: 409, the rental moved on server-side; non-fatal.
	KindConflict
	// KindRateLimited: 429 on chat sends.
	KindRateLimited
	// KindValidation: local pre-flight rejection, never reached the wire.
	KindValidation
)

type Error struct {
	Kind    Kind
	Status  int
	Message string
	// Missing names the profile fields the server wants completed
	// (eligibility errors only).
	Missing []string
	cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return fmt.Sprintf("api error (status %d)", e.Status)
}

func (e *Error) Unwrap() error { return e.cause }

// As pulls the typed error out of a wrapped chain.
func As(err error) (*Error, bool) {
	var ae *Error
	ok := errors.As(err, &ae)
	return ae, ok
}

func IsKind(err error, k Kind) bool {
	ae, ok := As(err)
	return ok && ae.Kind == k
}

// Validation builds a local pre-flight rejection.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Transport wraps a network-level failure (request never got a response).
func Transport(err error) *Error {
	return &Error{Kind: KindUnknown, cause: err}
}

const (
	codeProfileIncomplete = "PROFILE_INCOMPLETE"
	codeAdminForbidden    = "ADMIN_FORBIDDEN"
)

// Classify maps a non-2xx response to its error kind. hasToken feeds the
// 401/422 asymmetry documented on KindStaleCredential.
func Classify(status int, body []byte, hasToken bool) *Error {
	var eb model.ErrorBody
	_ = json.Unmarshal(body, &eb)

	e := &Error{Kind: KindUnknown, Status: status, Message: eb.Message}

	switch status {
	case http.StatusUnauthorized, http.StatusUnprocessableEntity:
		if !hasToken {
			e.Kind = KindStaleCredential
		}
	case http.StatusForbidden:
		e.Kind = KindAuthorization
		if eb.Payload != nil {
			switch eb.Payload.Code {
			case codeProfileIncomplete:
				e.Kind = KindEligibility
				e.Missing = eb.Payload.Missing
			case codeAdminForbidden:
				e.Kind = KindAdminForbidden
			}
		}
	case http.StatusConflict:
		e.Kind = KindConflict
	case http.StatusTooManyRequests:
		e.Kind = KindRateLimited
	}
	return e
}

package httperr

import "errors"

// Kind classifies a business failure so transport code and API clients can
// react uniformly: retry affordance, inline message, rollback, and so on.
type Kind int

const (
	KindNotFound Kind = iota
	KindValidationRejected
	KindTransientNetwork
	KindConflictOnMutation
	KindMissingContext
)

type BusinessError struct {
	Code string
	Kind Kind
}

func (e BusinessError) Error() string {
	return e.Code
}

// ErrBusiness keeps the historical constructor: a plain validation refusal.
func ErrBusiness(code string) error {
	return BusinessError{Code: code, Kind: KindValidationRejected}
}

func ErrNotFound(code string) error {
	return BusinessError{Code: code, Kind: KindNotFound}
}

func ErrTransient(code string) error {
	return BusinessError{Code: code, Kind: KindTransientNetwork}
}

func ErrConflict(code string) error {
	return BusinessError{Code: code, Kind: KindConflictOnMutation}
}

func ErrMissingContext(code string) error {
	return BusinessError{Code: code, Kind: KindMissingContext}
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

// Normalize maps any error onto the taxonomy. Errors already classified pass
// through; everything else (driver failures, malformed downstream bodies) is
// collapsed into a generic transient error instead of leaking upward.
func Normalize(err error) error {
	if err == nil {
		return nil
	}
	var be BusinessError
	if errors.As(err, &be) {
		return be
	}
	return BusinessError{Code: "request_failed", Kind: KindTransientNetwork}
}

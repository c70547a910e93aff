package umask

import "errors"

// ErrInvalidParameters is matched by every error Parse and Validate return.
var ErrInvalidParameters = errors.New("invalid sharpening parameters")

// ParamError explains why a parameter string was rejected.
// Err holds the underlying parse failure, if there was one.
type ParamError struct {
	Reason string
	Err    error
}

func (e *ParamError) Error() string {
	if e.Err != nil {
		return ErrInvalidParameters.Error() + ": " + e.Reason + ": " + e.Err.Error()
	}
	return ErrInvalidParameters.Error() + ": " + e.Reason
}

// Unwrap returns the underlying cause.
func (e *ParamError) Unwrap() error {
	return e.Err
}

// Is reports true for ErrInvalidParameters.
func (e *ParamError) Is(target error) bool {
	return target == ErrInvalidParameters
}

func invalid(reason string) error {
	return &ParamError{Reason: reason}
}

func invalidCause(reason string, err error) error {
	return &ParamError{Reason: reason, Err: err}
}

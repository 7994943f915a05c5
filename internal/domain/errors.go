package domain

import "errors"

var (
	// ErrInvalidArgument marks bad caller input. Never retried.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrComputationFailure marks an internal fault while computing an agreement.
	ErrComputationFailure = errors.New("error calculating rental cost")
)

// InvalidArgumentError carries the user-facing message for one rejected input.
// It matches ErrInvalidArgument under errors.Is.
type InvalidArgumentError struct {
	Field   string
	Message string
}

func NewInvalidArgumentError(field, message string) *InvalidArgumentError {
	return &InvalidArgumentError{Field: field, Message: message}
}

func (e *InvalidArgumentError) Error() string {
	return e.Message
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// IsInvalidArgumentError returns the InvalidArgumentError in err's chain, or nil
func IsInvalidArgumentError(err error) *InvalidArgumentError {
	if err == nil {
		return nil
	}

	var invalid *InvalidArgumentError
	if errors.As(err, &invalid) {
		return invalid
	}

	return nil
}

package quote

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is matched by every *InvalidArgumentError
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrBundleNotFound is returned when the catalog has no structure for a valid extras code
	ErrBundleNotFound = errors.New("extras bundle not found")

	// ErrInvalidDateOfBirth is returned when the stored date of birth is absent or malformed
	ErrInvalidDateOfBirth = errors.New("invalid date of birth")

	// ErrNoTierLookup is returned when the model was built without rebate tier data
	ErrNoTierLookup = errors.New("no rebate tier lookup configured")
)

// InvalidArgumentError carries a code rejected by a product code setter
type InvalidArgumentError struct {
	Field string
	Code  string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s code %q", e.Field, e.Code)
}

// Is lets errors.Is match ErrInvalidArgument
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

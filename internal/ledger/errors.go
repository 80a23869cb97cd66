package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input rejected before any mutation.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks an unresolvable donor, recipient, campaign or block reference.
	ErrNotFound = errors.New("not found")
	// ErrPersistence marks a storage failure while writing a block.
	ErrPersistence = errors.New("persistence failure")
	// ErrInvalidTransition marks a status change the block lifecycle does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrGenesisMissing marks a repair refused because block 1 no longer exists.
	ErrGenesisMissing = errors.New("genesis block missing")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

package collections

import (
	"github.com/pkg/errors"
)

// ErrIndexOutOfBounds is returned, wrapped with the offending index, when a
// positional operation is given an index outside the structure.
var ErrIndexOutOfBounds = errors.New("index out of bounds")

// ErrInvariant is returned, wrapped with a description, by the
// CheckInvariants methods when a structural invariant does not hold. It
// always means there is a bug in this module.
var ErrInvariant = errors.New("invariant violation")

// OutOfBounds wraps ErrIndexOutOfBounds with the index and the size of the
// structure it was applied to.
func OutOfBounds(index, size int) error {
	return errors.Wrapf(ErrIndexOutOfBounds, "index %d, size %d", index, size)
}

// Invariantf wraps ErrInvariant with a formatted description.
func Invariantf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvariant, format, args...)
}

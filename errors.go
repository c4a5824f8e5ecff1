package graphseg

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument reports malformed input: a non-positive vertex count,
	// a non-finite weight, mismatched lengths, an invalid c, or a forest
	// operation whose preconditions do not hold.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange reports a vertex id outside [0, n).
	ErrOutOfRange = errors.New("out of range")
)

func invalidArgument(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidArgument, "graphseg: "+format, args...)
}

func outOfRange(format string, args ...any) error {
	return errors.Wrapf(ErrOutOfRange, "graphseg: "+format, args...)
}

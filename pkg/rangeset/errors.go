package rangeset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is matched by every constructor failure.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError carries the arguments a constructor refused.
type InvalidArgumentError struct {
	Op   string
	Args []any
	Err  error
}

func invalidArgument(op string, err error, args ...any) error {
	return &InvalidArgumentError{Op: op, Args: args, Err: err}
}

func (e *InvalidArgumentError) Error() string {
	args := make([]string, 0, len(e.Args))
	for _, a := range e.Args {
		args = append(args, fmt.Sprintf("%v", a))
	}
	msg := fmt.Sprintf("%s: %s (%s)", e.Op, ErrInvalidArgument.Error(), strings.Join(args, ", "))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func (e *InvalidArgumentError) Unwrap() error { return e.Err }

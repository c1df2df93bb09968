package assembler

import (
	"errors"
	"fmt"
)

// ErrInvalidTarget matches every TargetError.
var ErrInvalidTarget = errors.New("invalid builder target")

// TargetError reports a type that cannot receive a builder. It is fatal for
// that type only.
type TargetError struct {
	Type   string
	Reason string
	Err    error
}

func (e *TargetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Reason)
}

func (e *TargetError) Is(target error) bool { return target == ErrInvalidTarget }

func (e *TargetError) Unwrap() error { return e.Err }

func targetError(typ, reason string, err error) error {
	return &TargetError{Type: typ, Reason: reason, Err: err}
}

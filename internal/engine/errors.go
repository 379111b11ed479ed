package engine

import (
	"errors"
	"fmt"
)

// OpError reports an operation that was refused. State is left unchanged
// whenever one is returned, and it should be shown to the user.
type OpError struct {
	Op     string
	Target string
	Reason string
}

func (e *OpError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s '%s': %s", e.Op, e.Target, e.Reason)
}

const (
	reasonBuiltinImmutable = "built-in kits cannot be modified"
	reasonUnknownKit       = "no such kit"
	reasonUnknownItem      = "no such item"
	reasonUnknownCategory  = "no such category"
)

// IsOpError reports whether err is a refused operation.
func IsOpError(err error) bool {
	var op *OpError
	return errors.As(err, &op)
}

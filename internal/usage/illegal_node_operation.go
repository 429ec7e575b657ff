package usage

import "fmt"

// IllegalNodeOperation is returned while building a command tree when a
// builder call conflicts with the node's state.
func IllegalNodeOperation(format string, args ...any) *Error {
	return &Error{
		Kind:    KindIllegalNodeOperation,
		Message: fmt.Sprintf(format, args...),
	}
}

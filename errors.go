package vkobj

import (
	"fmt"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// ErrProcNotFound is returned when the driver does not export an entry point.
var ErrProcNotFound = errors.New("vulkan: entry point not found")

// Error is a non-success status code returned by a driver call.
type Error struct {
	// Op is the entry point that failed, e.g. "vkCreateFence".
	Op   string
	Code vk.Result
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%d)", e.Op, resultText(e.Code), int32(e.Code))
}

func resultText(code vk.Result) string {
	if err := vk.Error(code); err != nil {
		return err.Error()
	}
	return "vulkan result"
}

// NewError wraps a status code into an *Error with a stack trace.
// It returns nil for vk.Success.
func NewError(op string, ret vk.Result) error {
	if ret == vk.Success {
		return nil
	}
	return errors.WithStack(&Error{Op: op, Code: ret})
}

// IsResult reports whether err carries the given status code.
func IsResult(err error, code vk.Result) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// ResultOf extracts the status code from err. Ok is false when err does not
// wrap an *Error.
func ResultOf(err error) (code vk.Result, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return vk.Success, false
}

// accepts reports whether ret is one of the soft codes a call treats as a value.
func accepts(ret vk.Result, soft []vk.Result) bool {
	if ret == vk.Success {
		return true
	}
	for _, s := range soft {
		if ret == s {
			return true
		}
	}
	return false
}

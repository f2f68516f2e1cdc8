package watrix

import (
	"errors"
	"fmt"
)

var (
	// ErrCompressorBuilt is the cause of the panic raised when values are
	// added to a Compressor that has already answered a query.
	ErrCompressorBuilt = errors.New("compressor already built")

	// ErrAlreadyBuilt is the cause of the panic raised when a one-shot
	// builder is built twice or modified after Build.
	ErrAlreadyBuilt = errors.New("already built")

	// ErrValueTooLarge is the cause of the panic raised when a value with
	// bit 63 set is pushed into a wavelet matrix.
	ErrValueTooLarge = errors.New("value exceeds 63 bits")

	// ErrOutOfRange is the cause of the panic raised when a position or
	// rank argument lies outside the indexed sequence.
	ErrOutOfRange = errors.New("argument out of range")

	// ErrCorrupt is returned by UnmarshalBinary when the encoded form is
	// inconsistent.
	ErrCorrupt = errors.New("corrupt wavelet matrix encoding")
)

// ContractError is the panic value used when a caller violates the
// preconditions of an operation. It is never returned as an error.
type ContractError struct {
	Op    string
	Msg   string
	cause error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("watrix: %s: %s", e.Op, e.Msg)
}

// Unwrap returns the sentinel describing the violated contract.
func (e *ContractError) Unwrap() error { return e.cause }

// Violation panics with a *ContractError for op wrapping cause. Packages
// layered on watrix use it so that every contract panic has the same type.
func Violation(op string, cause error, format string, args ...any) {
	panic(&ContractError{Op: op, Msg: fmt.Sprintf(format, args...), cause: cause})
}

func violation(op string, cause error, format string, args ...any) {
	Violation(op, cause, format, args...)
}

func checkRange(op string, ranze Range, num uint64) {
	if ranze.Bpos > ranze.Epos || ranze.Epos > num {
		violation(op, ErrOutOfRange, "range [%d, %d) invalid for length %d", ranze.Bpos, ranze.Epos, num)
	}
}

func checkPos(op string, pos, num uint64) {
	if pos >= num {
		violation(op, ErrOutOfRange, "position %d out of range [0, %d)", pos, num)
	}
}

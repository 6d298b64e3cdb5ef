// Package simerrors implements the five semantic error kinds of spec §7
// (InvalidConfig, OutOfSequence, TreeInvariantViolation, NumericInstability,
// RunawayLength) following the typed-wrapper idiom of moby/moby's errdefs
// package: a marker type per kind, an Is<Kind> classifier that understands
// errors.Is/As unwrapping, and a Cause() accessor for the wrapped error.
package simerrors

import (
	"errors"
	"fmt"
)

type kind int

const (
	kindInvalidConfig kind = iota
	kindOutOfSequence
	kindTreeInvariantViolation
	kindNumericInstability
	kindRunawayLength
)

func (k kind) String() string {
	switch k {
	case kindInvalidConfig:
		return "invalid config"
	case kindOutOfSequence:
		return "out of sequence"
	case kindTreeInvariantViolation:
		return "tree invariant violation"
	case kindNumericInstability:
		return "numeric instability"
	case kindRunawayLength:
		return "runaway length"
	default:
		return "unknown"
	}
}

// simErr wraps a cause with one of the kinds above. It implements Cause()
// (the pre-Go1.13 unwrap convention moby's errdefs still tests against) and
// Unwrap() (so errors.Is/As work against the cause).
type simErr struct {
	kind  kind
	cause error
}

func (e *simErr) Error() string {
	if e.cause == nil {
		return e.kind.String()
	}
	return fmt.Sprintf("%s: %v", e.kind.String(), e.cause)
}

func (e *simErr) Cause() error  { return e.cause }
func (e *simErr) Unwrap() error { return e.cause }

func is(err error, k kind) bool {
	var se *simErr
	if errors.As(err, &se) {
		return se.kind == k
	}
	return false
}

// InvalidConfig reports a fatal startup-time configuration error: negative
// rates, non-positive lengths, an unknown algorithm name, or an unreadable
// tree file.
func InvalidConfig(format string, args ...any) error {
	return &simErr{kind: kindInvalidConfig, cause: fmt.Errorf(format, args...)}
}

// WrapInvalidConfig attaches the InvalidConfig kind to an existing error.
func WrapInvalidConfig(cause error) error {
	return &simErr{kind: kindInvalidConfig, cause: cause}
}

// IsInvalidConfig reports whether err (or something it wraps) is an
// InvalidConfig error.
func IsInvalidConfig(err error) bool { return is(err, kindInvalidConfig) }

// OutOfSequence marks an IndelEvent whose Place exceeds the current length,
// or whose effective length is zero after clipping. It is legitimate and
// silently dropped by seqnode — callers should not surface it, but it is
// still a typed value so tests can assert a no-op happened for the right
// reason.
func OutOfSequence(format string, args ...any) error {
	return &simErr{kind: kindOutOfSequence, cause: fmt.Errorf(format, args...)}
}

// IsOutOfSequence reports whether err is an OutOfSequence error.
func IsOutOfSequence(err error) bool { return is(err, kindOutOfSequence) }

// TreeInvariantViolation marks a detected mismatch between a cached
// subtree length and its true sum, or a broken BST/AVL invariant. This is a
// programmer bug, surfaced by Tree.Audit.
func TreeInvariantViolation(format string, args ...any) error {
	return &simErr{kind: kindTreeInvariantViolation, cause: fmt.Errorf(format, args...)}
}

// IsTreeInvariantViolation reports whether err is a TreeInvariantViolation.
func IsTreeInvariantViolation(err error) bool { return is(err, kindTreeInvariantViolation) }

// NumericInstability marks a row of a computed transition-probability
// matrix whose sum deviates from 1 beyond tolerance.
func NumericInstability(format string, args ...any) error {
	return &simErr{kind: kindNumericInstability, cause: fmt.Errorf(format, args...)}
}

// IsNumericInstability reports whether err is a NumericInstability error.
func IsNumericInstability(err error) bool { return is(err, kindNumericInstability) }

// RunawayLength marks a simulation aborted because a sequence grew past the
// configured ceiling.
func RunawayLength(format string, args ...any) error {
	return &simErr{kind: kindRunawayLength, cause: fmt.Errorf(format, args...)}
}

// IsRunawayLength reports whether err is a RunawayLength error.
func IsRunawayLength(err error) bool { return is(err, kindRunawayLength) }

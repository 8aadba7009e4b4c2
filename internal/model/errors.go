package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for rejected commands. Use errors.Is to branch on them.
var (
	ErrMalformedInput   = errors.New("malformed input")
	ErrEmptySquare      = errors.New("empty square")
	ErrWrongTurn        = errors.New("wrong turn")
	ErrIllegalMove      = errors.New("illegal move")
	ErrIllegalPromotion = errors.New("illegal promotion")

	// ErrInvariant marks misuse of the raw board primitives. Public Game calls never
	// produce it.
	ErrInvariant = errors.New("board invariant violated")
)

// RuleError is a rejected command with a human-readable reason.
type RuleError struct {
	Err    error
	Reason string
}

func (e *RuleError) Error() string {
	if e.Reason == "" {
		return e.Err.Error()
	}
	return e.Reason
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

func reject(err error, format string, args ...interface{}) error {
	return &RuleError{Err: err, Reason: fmt.Sprintf(format, args...)}
}

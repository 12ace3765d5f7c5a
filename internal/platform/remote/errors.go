// Copyright (c) 2026 Citely. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remote

import (
	"errors"
	"fmt"
)

// Kind classifies why a remote call failed.
type Kind string

const (
	// KindNetwork covers connection refused, DNS failures, and timeouts.
	KindNetwork Kind = "network"

	// KindStatus means the service answered with a non-2xx status code.
	KindStatus Kind = "status"

	// KindDecode means a 2xx response carried a body that was not valid JSON
	// for the expected shape.
	KindDecode Kind = "decode"

	// KindEncode means the request body could not be serialized.
	KindEncode Kind = "encode"
)

// Error is the transport failure returned by [Client.Do].
//
// Response bodies of non-2xx answers are discarded; only the status code is kept.
type Error struct {
	Kind       Kind
	Method     string
	Path       string
	StatusCode int
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("remote: %s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
	default:
		return fmt.Sprintf("remote: %s %s: %s failure: %v", e.Method, e.Path, e.Kind, e.Cause)
	}
}

// Unwrap exposes the underlying cause (e.g. context.DeadlineExceeded).
func (e *Error) Unwrap() error { return e.Cause }

// IsKind reports whether err is (or wraps) a remote [*Error] of the given kind.
func IsKind(err error, kind Kind) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == kind
}

// StatusCode returns the HTTP status carried by a KindStatus error, or 0.
func StatusCode(err error) int {
	var re *Error
	if errors.As(err, &re) && re.Kind == KindStatus {
		return re.StatusCode
	}
	return 0
}

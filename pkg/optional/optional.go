// Copyright (c) 2026 Citely. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package optional treats pointers as optional-value containers.

A nil pointer means "absent" (the caller never supplied the value); a non-nil
pointer means "present", even when it points at a zero value such as 0 or "".
JSON fields declared as pointers with `omitempty` therefore disappear from the
wire only when absent, never because the value happens to be falsy.

Key Functions:
  - Of: Wraps a value literal as a present optional.
  - Get: Returns the value and whether it was present.
  - Or: Dereferences with a fallback for absent values.
  - Clone: Copies the pointee so two records never share storage.
*/
package optional

import "fmt"

// Of returns a present optional holding v.
func Of[T any](v T) *T {
	return &v
}

// Get returns the held value and true, or the zero value and false when absent.
func Get[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

// Or returns the held value, or fallback when absent.
func Or[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// Clone returns a new pointer to a copy of *p, or nil when p is absent.
func Clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// String formats a present value with %v and an absent one as "".
func String[T any](p *T) string {
	if p == nil {
		return ""
	}
	return fmt.Sprint(*p)
}

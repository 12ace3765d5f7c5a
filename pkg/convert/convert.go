// Copyright (c) 2026 Citely. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides quick type-conversion utilities.

It wraps [strconv] for the handful of conversions the client performs on
untrusted text: URL/CLI ids, and the literal "true"/"false" strings the remote citation service expects as query values.
*/
package convert

import (
	"strconv"
	"strings"
)

// ParseID parses a positive base-10 integer id.
// It returns false if the string is empty, malformed, or not positive.
func ParseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// FormatBool renders b as the lowercase literal "true" or "false".
func FormatBool(b bool) string {
	return strconv.FormatBool(b)
}

// FormatID renders an id in base 10.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

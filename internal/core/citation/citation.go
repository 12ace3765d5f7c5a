// Copyright (c) 2026 Citely. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package citation requests formatted citations from the remote service.

The formatting algorithm lives entirely on the service side. This package
normalizes the requested style, transmits the request parameters, and turns
transport failures into a user-facing message that names the style.
*/
package citation

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Style names a citation style. The service validates the supported set;
// unknown styles are passed through after normalization.
type Style string

const (
	StyleMLA     Style = "MLA"
	StyleAPA     Style = "APA"
	StyleChicago Style = "CHICAGO"
)

const (
	// DefaultStyle is used when the caller does not choose one.
	DefaultStyle = StyleMLA

	// DefaultBackfill asks the service to infer missing bibliographic fields.
	DefaultBackfill = true
)

// KnownStyles lists the styles offered in the user interface.
var KnownStyles = []Style{StyleMLA, StyleAPA, StyleChicago}

var upper = cases.Upper(language.Und)

// NormalizeStyle upper-cases s with full Unicode case mapping.
// An empty input yields [DefaultStyle].
func NormalizeStyle(s string) Style {
	if s == "" {
		return DefaultStyle
	}
	return Style(upper.String(s))
}

// String implements [fmt.Stringer].
func (s Style) String() string { return string(s) }

// Request is an ephemeral citation request. It is never stored.
type Request struct {
	SourceID int64
	Style    Style
	Backfill bool
}

// Response is the body returned by the generation endpoint. A missing
// citation field decodes to the empty string.
type Response struct {
	Citation string `json:"citation"`
}

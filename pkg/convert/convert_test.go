// Copyright (c) 2026 Citely. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/citely/pkg/convert"
)

/*
TestParseID covers the ids accepted from URLs and CLI arguments.
*/
func TestParseID(t *testing.T) {
	tests := []struct {
		input string
		want  int64
		ok    bool
	}{
		{"1", 1, true},
		{" 42 ", 42, true},
		{"0", 0, false},
		{"-7", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"1.5", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := convert.ParseID(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestFormatBool verifies the literal strings sent as the backfill parameter.
*/
func TestFormatBool(t *testing.T) {
	assert.Equal(t, "true", convert.FormatBool(true))
	assert.Equal(t, "false", convert.FormatBool(false))
	assert.Equal(t, "3", convert.FormatID(3))
}

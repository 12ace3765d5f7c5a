package reading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/citely/internal/core/source"
)

/*
TestFallback_MatchesSamples verifies the static dataset carries the same
content as the samples created remotely, with ids 1..3 in order.
*/
func TestFallback_MatchesSamples(t *testing.T) {
	samples := []source.Source{sampleBook().Source(), sampleArticle().Source(), sampleVideo().Source()}
	fallback := Fallback()

	require.Len(t, fallback, len(samples))
	for i := range fallback {
		assert.Equal(t, int64(i+1), fallback[i].IDValue())

		withoutID := fallback[i].Clone()
		withoutID.ID = nil
		assert.Equal(t, samples[i], withoutID)
	}
}

func TestFallback_ReturnsCopies(t *testing.T) {
	first := Fallback()
	*first[0].Year = 2000

	assert.Equal(t, 1994, *Fallback()[0].Year)
}

func TestDecodeFallback_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", "- id: [1"},
		{"missing_id", "- title: T\n  author: A\n  type: BOOK\n"},
		{"unknown_type", "- id: 1\n  title: T\n  author: A\n  type: PODCAST\n"},
		{"missing_title", "- id: 1\n  author: A\n  type: BOOK\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeFallback([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

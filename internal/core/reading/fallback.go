package reading

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/citely/internal/core/source"
)

//go:embed fallback.yaml
var fallbackYAML []byte

// fallbackReadings is decoded once at package init; a malformed embedded
// file is a build defect, so it panics.
var fallbackReadings = mustDecodeFallback(fallbackYAML)

func mustDecodeFallback(data []byte) []source.Source {
	readings, err := decodeFallback(data)
	if err != nil {
		panic(err)
	}
	return readings
}

func decodeFallback(data []byte) ([]source.Source, error) {
	var readings []source.Source
	if err := yaml.Unmarshal(data, &readings); err != nil {
		return nil, fmt.Errorf("reading: decode fallback dataset: %w", err)
	}

	for i := range readings {
		if !readings[i].HasID() {
			return nil, fmt.Errorf("reading: fallback entry %d has no id", i)
		}
		if err := readings[i].Validate(); err != nil {
			return nil, fmt.Errorf("reading: fallback entry %d: %w", i, err)
		}
	}

	return readings, nil
}

// Fallback returns a fresh copy of the static fallback readings.
func Fallback() []source.Source {
	out := make([]source.Source, 0, len(fallbackReadings))
	for _, reading := range fallbackReadings {
		out = append(out, reading.Clone())
	}
	return out
}

package sigio

import (
	"path/filepath"
	"strings"

	"lfpsync/internal/errors"
	"lfpsync/internal/signal"
)

// Load reads one channel from a recording file, dispatching on the file
// extension. WAV files carry their own sample rate; CSV files require one.
func Load(path string, channel, rate int, role signal.Role) (signal.Signal, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return LoadWAVChannel(path, channel, role)
	case ".csv":
		return LoadCSVColumn(path, channel, rate, role)
	default:
		return signal.Signal{}, errors.Newf("unsupported input format %q, expected .wav or .csv", filepath.Ext(path)).
			Component("sigio").
			Category(errors.CategoryValidation).
			Context("path", path).
			Build()
	}
}

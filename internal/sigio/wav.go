// Package sigio loads recorded channels from disk into Signal values.
// Channel indices are always supplied by the caller; the package does no
// channel discovery.
package sigio

import (
	"os"

	"github.com/go-audio/wav"

	"lfpsync/internal/errors"
	"lfpsync/internal/signal"
)

// getSampleDivisor returns the full-scale divisor for a PCM bit depth, so
// samples are normalized into [-1, 1].
func getSampleDivisor(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16:
		return 32768.0, nil
	case 24:
		return 8388608.0, nil
	case 32:
		return 2147483648.0, nil
	default:
		return 0, errors.Newf("unsupported bit depth: %d", bitDepth).
			Component("sigio").
			Category(errors.CategoryValidation).
			Build()
	}
}

// LoadWAVChannel reads one channel of a PCM WAV file into a Signal. The
// sample rate is taken from the file header.
func LoadWAVChannel(path string, channel int, role signal.Role) (signal.Signal, error) {
	file, err := os.Open(path)
	if err != nil {
		return signal.Signal{}, errors.New(err).
			Component("sigio").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	decoder.ReadInfo()
	if !decoder.IsValidFile() {
		return signal.Signal{}, errors.Newf("input is not a valid WAV audio file").
			Component("sigio").
			Category(errors.CategoryValidation).
			Context("path", path).
			Build()
	}

	numChans := int(decoder.NumChans)
	if channel < 0 || channel >= numChans {
		return signal.Signal{}, errors.Newf("channel %d out of range, file has %d channels", channel, numChans).
			Component("sigio").
			Category(errors.CategoryValidation).
			Context("path", path).
			Build()
	}

	divisor, err := getSampleDivisor(int(decoder.BitDepth))
	if err != nil {
		return signal.Signal{}, err
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return signal.Signal{}, errors.New(err).
			Component("sigio").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}

	// De-interleave the requested channel.
	frames := len(buf.Data) / numChans
	samples := make([]float64, 0, frames)
	for i := channel; i < len(buf.Data); i += numChans {
		samples = append(samples, float64(buf.Data[i])/divisor)
	}

	return signal.New(samples, int(decoder.SampleRate), role), nil
}

package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lfpsync/internal/errors"
)

func validSettings() *Settings {
	return &Settings{
		Detection: DefaultDetection(),
		Timeshift: DefaultTimeshift(),
	}
}

func TestValidate(t *testing.T) {
	t.Run("defaults_are_valid", func(t *testing.T) {
		assert.NoError(t, validSettings().Validate())
	})

	mutations := map[string]func(*Settings){
		"zero_baseline":       func(s *Settings) { s.Detection.BaselineSeconds = 0 },
		"negative_factor":     func(s *Settings) { s.Detection.ExternalThresholdFactor = -1 },
		"percentile_too_high": func(s *Settings) { s.Detection.ThresholdPercentile = 101 },
		"percentile_zero":     func(s *Settings) { s.Detection.ThresholdPercentile = 0 },
		"height_fraction_one": func(s *Settings) { s.Detection.PeakHeightFraction = 1 },
		"zero_consistency":    func(s *Settings) { s.Detection.ConsistencyWindow = 0 },
		"zero_highpass":       func(s *Settings) { s.Detection.HighpassCutoff = 0 },
		"zero_drift_limit":    func(s *Settings) { s.Timeshift.MaxDriftMs = 0 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			s := validSettings()
			mutate(s)
			err := s.Validate()
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfiguration))
		})
	}
}

func TestDefaultDetection(t *testing.T) {
	d := DefaultDetection()
	assert.Equal(t, 2, d.BaselineSeconds)
	assert.InDelta(t, 1.5, d.ExternalThresholdFactor, 1e-12)
	assert.InDelta(t, 95.0, d.ThresholdPercentile, 1e-12)
	assert.Equal(t, 20, d.MaxQuietPeaks)
	assert.InDelta(t, 8.0, d.MinArtifactRatio, 1e-12)
}

func TestLoadAppliesDefaults(t *testing.T) {
	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "lfpsync", settings.Main.Name)
	assert.Equal(t, DefaultDetection(), settings.Detection)
	assert.InDelta(t, 100.0, settings.Timeshift.MaxDriftMs, 1e-12)
	assert.False(t, settings.Output.SQLite.Enabled)
	assert.False(t, settings.Sentry.Enabled)
}

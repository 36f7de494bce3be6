// config.go: settings struct and viper-backed loading for lfpsync.
package conf

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"lfpsync/internal/errors"
)

// LogConfig holds file logging settings.
type LogConfig struct {
	Enabled    bool   // true to enable file logging
	Path       string // log file path
	MaxSize    int    // rotate after this many megabytes
	MaxBackups int    // rotated files to keep
	MaxAge     int    // days to keep rotated files
}

// MainSettings holds application-wide settings.
type MainSettings struct {
	Name string    // application name used in log entries
	Log  LogConfig // file logging settings
}

// DetectionSettings holds the tunable constants of the artifact detectors.
// The defaults encode the heuristics the detectors were calibrated with;
// they may need recalibration per recording setup.
type DetectionSettings struct {
	BaselineSeconds         int     // artifact-free prefix used for threshold calibration
	ExternalThresholdFactor float64 // external threshold = -factor * baseline peak-to-peak
	PolarityTailExclusion   int     // samples excluded from the end during polarity comparison
	ThresholdPercentile     float64 // percentile of the pre-crossing distribution (threshold method)
	RatioWindowSeconds      int     // window for the max of the matched-filter response
	NoiseWindowSeconds      int     // window for the response noise floor estimate
	PeakHeightFraction      float64 // peak height threshold as a fraction of the response extreme
	PeakDistanceSeconds     float64 // minimum spacing between response peaks
	MaxQuietPeaks           int     // more peaks than this with a low ratio means no artifact
	MinArtifactRatio        float64 // minimum max/stddev ratio for a credible artifact
	InversionProximity      int     // samples; closer pos/neg peaks trigger the width re-check
	WidthRatioFactor        float64 // positive width must exceed factor * negative width to revoke inversion
	HalfHeightFraction      float64 // response fraction bounding the peak width walk
	ConsistencyWindow       int     // half-window (samples) for candidate amplitude measurement
	ConsistencyFraction     float64 // candidates below fraction * median amplitude are rejected
	HighpassCutoff          float64 // detrend high-pass cutoff in Hz for the external channel
}

// TimeshiftSettings holds drift-check settings.
type TimeshiftSettings struct {
	MaxDriftMs float64 // drifts above this raise the dropped-samples advisory
}

// SQLiteSettings holds the session parameter database settings.
type SQLiteSettings struct {
	Enabled bool
	Path    string
}

// OutputSettings groups persistence settings.
type OutputSettings struct {
	SQLite SQLiteSettings
}

// SentrySettings holds optional error telemetry settings.
type SentrySettings struct {
	Enabled bool
	DSN     string
}

// Settings is the root configuration.
type Settings struct {
	Debug     bool
	Main      MainSettings
	Detection DetectionSettings
	Timeshift TimeshiftSettings
	Output    OutputSettings
	Sentry    SentrySettings
}

// DefaultDetection returns the detection tunables with their calibrated
// defaults, for library callers that do not go through viper.
func DefaultDetection() DetectionSettings {
	return DetectionSettings{
		BaselineSeconds:         2,
		ExternalThresholdFactor: 1.5,
		PolarityTailExclusion:   1000,
		ThresholdPercentile:     95,
		RatioWindowSeconds:      30,
		NoiseWindowSeconds:      5,
		PeakHeightFraction:      0.3,
		PeakDistanceSeconds:     1,
		MaxQuietPeaks:           20,
		MinArtifactRatio:        8,
		InversionProximity:      50,
		WidthRatioFactor:        2,
		HalfHeightFraction:      0.3,
		ConsistencyWindow:       5,
		ConsistencyFraction:     0.5,
		HighpassCutoff:          1.0,
	}
}

// DefaultTimeshift returns the drift-check defaults.
func DefaultTimeshift() TimeshiftSettings {
	return TimeshiftSettings{
		MaxDriftMs: 100,
	}
}

// Load reads the configuration file (if any) and returns the settings.
// A missing config file is not an error; defaults apply.
func Load() (*Settings, error) {
	setDefaultConfig()

	if err := initViper(); err != nil {
		return nil, err
	}

	settings := &Settings{}
	if err := viper.Unmarshal(settings); err != nil {
		return nil, errors.New(fmt.Errorf("unmarshaling config: %w", err)).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if dir, err := configDir(); err == nil {
		viper.AddConfigPath(dir)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errors.New(fmt.Errorf("reading config file: %w", err)).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	return nil
}

func configDir() (string, error) {
	dir, err := defaultConfigBase()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "lfpsync"), nil
}

// Validate checks settings for values the detectors cannot work with.
func (s *Settings) Validate() error {
	d := &s.Detection
	if d.BaselineSeconds <= 0 {
		return validationError("detection.baselineseconds must be positive, got %d", d.BaselineSeconds)
	}
	if d.ExternalThresholdFactor <= 0 {
		return validationError("detection.externalthresholdfactor must be positive, got %v", d.ExternalThresholdFactor)
	}
	if d.ThresholdPercentile <= 0 || d.ThresholdPercentile > 100 {
		return validationError("detection.thresholdpercentile must be in (0, 100], got %v", d.ThresholdPercentile)
	}
	if d.PeakHeightFraction <= 0 || d.PeakHeightFraction >= 1 {
		return validationError("detection.peakheightfraction must be in (0, 1), got %v", d.PeakHeightFraction)
	}
	if d.ConsistencyWindow <= 0 {
		return validationError("detection.consistencywindow must be positive, got %d", d.ConsistencyWindow)
	}
	if d.HighpassCutoff <= 0 {
		return validationError("detection.highpasscutoff must be positive, got %v", d.HighpassCutoff)
	}
	if s.Timeshift.MaxDriftMs <= 0 {
		return validationError("timeshift.maxdriftms must be positive, got %v", s.Timeshift.MaxDriftMs)
	}
	return nil
}

func validationError(format string, args ...any) error {
	return errors.Newf(format, args...).
		Component("conf").
		Category(errors.CategoryConfiguration).
		Build()
}

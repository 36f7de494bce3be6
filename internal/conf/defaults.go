// defaults.go: default values for settings.
package conf

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "lfpsync")
	viper.SetDefault("main.log.enabled", false)
	viper.SetDefault("main.log.path", "lfpsync.log")
	viper.SetDefault("main.log.maxsize", 100)
	viper.SetDefault("main.log.maxbackups", 3)
	viper.SetDefault("main.log.maxage", 28)

	viper.SetDefault("detection.baselineseconds", 2)
	viper.SetDefault("detection.externalthresholdfactor", 1.5)
	viper.SetDefault("detection.polaritytailexclusion", 1000)
	viper.SetDefault("detection.thresholdpercentile", 95)
	viper.SetDefault("detection.ratiowindowseconds", 30)
	viper.SetDefault("detection.noisewindowseconds", 5)
	viper.SetDefault("detection.peakheightfraction", 0.3)
	viper.SetDefault("detection.peakdistanceseconds", 1)
	viper.SetDefault("detection.maxquietpeaks", 20)
	viper.SetDefault("detection.minartifactratio", 8)
	viper.SetDefault("detection.inversionproximity", 50)
	viper.SetDefault("detection.widthratiofactor", 2)
	viper.SetDefault("detection.halfheightfraction", 0.3)
	viper.SetDefault("detection.consistencywindow", 5)
	viper.SetDefault("detection.consistencyfraction", 0.5)
	viper.SetDefault("detection.highpasscutoff", 1.0)

	viper.SetDefault("timeshift.maxdriftms", 100)

	viper.SetDefault("output.sqlite.enabled", false)
	viper.SetDefault("output.sqlite.path", "lfpsync.db")

	viper.SetDefault("sentry.enabled", false)
	viper.SetDefault("sentry.dsn", "")
}

// defaultConfigBase returns the base directory for user configuration.
func defaultConfigBase() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}

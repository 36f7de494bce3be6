package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"lfpsync/cmd"
	"lfpsync/internal/conf"
	"lfpsync/internal/detect"
	"lfpsync/internal/logging"
	"lfpsync/internal/observability/metrics"
	"lfpsync/internal/telemetry"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}
	logging.Init(level)

	if settings.Main.Log.Enabled {
		fileLogger, closeLogger, err := logging.NewFileLogger(logging.FileConfig{
			Path:       settings.Main.Log.Path,
			MaxSizeMB:  settings.Main.Log.MaxSize,
			MaxBackups: settings.Main.Log.MaxBackups,
			MaxAgeDays: settings.Main.Log.MaxAge,
		}, settings.Main.Name, level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = closeLogger() }()
		slog.SetDefault(fileLogger)
	}

	if err := telemetry.Init(&settings.Sentry); err != nil {
		slog.Warn("error telemetry disabled", "error", err)
	}
	defer telemetry.Flush()

	registry := prometheus.NewRegistry()
	detectionMetrics, err := metrics.NewDetectionMetrics(registry)
	if err != nil {
		logging.Fatal("failed to register metrics", "error", err)
	}
	detect.SetMetrics(detectionMetrics)

	rootCmd := cmd.RootCommand(settings, detectionMetrics)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package timeshift implements the timeshift subcommand: measure residual
// clock drift between the two aligned recordings using a late artifact.
package timeshift

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lfpsync/internal/conf"
	"lfpsync/internal/dsp"
	"lfpsync/internal/observability/metrics"
	"lfpsync/internal/paramstore"
	"lfpsync/internal/sigio"
	"lfpsync/internal/signal"
	drift "lfpsync/internal/timeshift"
)

// Command returns the timeshift subcommand.
func Command(settings *conf.Settings, m *metrics.DetectionMetrics) *cobra.Command {
	var (
		sessionID       string
		lfpInput        string
		lfpChannel      int
		lfpRate         int
		externalInput   string
		externalChannel int
		externalRate    int
		lfpTime         float64
		externalTime    float64
	)

	cmd := &cobra.Command{
		Use:   "timeshift",
		Short: "Check residual clock drift between the aligned recordings",
		Long: `Measures the time difference between the last stimulation artifact as
seen by each recording system. Both recordings must already be aligned
(cropped to the first artifact). The reference timestamps are either given
with --lfp-time/--external-time or selected interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tLFP, err := resolveTimestamp(cmd.Flags().Changed("lfp-time"), lfpTime,
				lfpInput, lfpChannel, lfpRate, signal.RoleLFP, settings, cmd.InOrStdin())
			if err != nil {
				return err
			}
			tExternal, err := resolveTimestamp(cmd.Flags().Changed("external-time"), externalTime,
				externalInput, externalChannel, externalRate, signal.RoleExternal, settings, cmd.InOrStdin())
			if err != nil {
				return err
			}

			var store paramstore.Interface
			if settings.Output.SQLite.Enabled {
				sqliteStore := paramstore.NewSQLite(settings.Output.SQLite.Path)
				if err := sqliteStore.Open(); err != nil {
					return err
				}
				defer sqliteStore.Close()
				store = sqliteStore
			}

			est := drift.NewEstimator(settings.Timeshift, store)
			est.SetMetrics(m)
			rec, err := est.Estimate(sessionID, tLFP, tExternal)
			if err != nil {
				return err
			}

			fmt.Printf("drift: %.2f ms (lfp %.6f s, external %.6f s)\n", rec.DriftMs, rec.TLFP, rec.TExternal)
			if rec.Anomaly {
				fmt.Println("warning: drift is unusually high, check for packet loss in the LFP stream")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID keying the persisted drift record")
	cmd.Flags().StringVar(&lfpInput, "lfp", "", "Aligned LFP recording (.wav or .csv)")
	cmd.Flags().IntVar(&lfpChannel, "lfp-channel", 0, "LFP channel or column index")
	cmd.Flags().IntVar(&lfpRate, "lfp-rate", 0, "LFP sample rate in Hz, required for CSV input")
	cmd.Flags().StringVar(&externalInput, "external", "", "Aligned external recording (.wav or .csv)")
	cmd.Flags().IntVar(&externalChannel, "external-channel", 0, "External channel or column index")
	cmd.Flags().IntVar(&externalRate, "external-rate", 0, "External sample rate in Hz, required for CSV input")
	cmd.Flags().Float64Var(&lfpTime, "lfp-time", 0, "Last-artifact time in the LFP stream (seconds), skips selection")
	cmd.Flags().Float64Var(&externalTime, "external-time", 0, "Last-artifact time in the external stream (seconds), skips selection")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

// resolveTimestamp returns the reference timestamp for one stream, either
// from a flag or by asking the operator while showing the loaded channel.
func resolveTimestamp(haveFlag bool, flagValue float64, input string, channel, rate int,
	role signal.Role, settings *conf.Settings, in io.Reader) (float64, error) {

	if haveFlag {
		return drift.StaticSelector(flagValue).Select(signal.Signal{}, "")
	}

	sig, err := sigio.Load(input, channel, rate, role)
	if err != nil {
		return 0, err
	}
	if role == signal.RoleExternal {
		filtered, err := dsp.Detrend(sig.Samples, sig.Rate, settings.Detection.HighpassCutoff)
		if err != nil {
			return 0, err
		}
		sig = signal.New(filtered, sig.Rate, sig.Role)
	}

	hint := fmt.Sprintf("select the sample corresponding to the last artifact in the %s recording", role)
	return promptSelector(in, os.Stdout).Select(sig, hint)
}

// promptSelector asks the operator for a timestamp on standard input.
func promptSelector(in io.Reader, out io.Writer) drift.SampleSelector {
	reader := bufio.NewReader(in)
	return drift.SelectorFunc(func(sig signal.Signal, hint string) (float64, error) {
		fmt.Fprintln(out, hint)
		fmt.Fprintf(out, "recording: %.3f s at %d Hz (%d samples)\n", sig.Duration(), sig.Rate, sig.Len())
		fmt.Fprint(out, "time in seconds: ")

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return 0, err
		}
		var seconds float64
		if _, err := fmt.Sscanf(line, "%f", &seconds); err != nil {
			return 0, fmt.Errorf("invalid time %q: %w", line, err)
		}
		return seconds, nil
	})
}

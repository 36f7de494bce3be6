// Package detect implements the detect subcommand: locate the sync
// artifact in one recorded channel and report its onset time.
package detect

import (
	"fmt"

	"github.com/spf13/cobra"

	"lfpsync/internal/conf"
	detector "lfpsync/internal/detect"
	"lfpsync/internal/dsp"
	"lfpsync/internal/paramstore"
	"lfpsync/internal/sigio"
	"lfpsync/internal/signal"
)

// Command returns the detect subcommand.
func Command(settings *conf.Settings) *cobra.Command {
	var (
		input      string
		channel    int
		rate       int
		roleStr    string
		methodStr  string
		startIndex int
		sessionID  string
		noDetrend  bool
	)

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect the sync artifact in one recorded channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := signal.ParseRole(roleStr)
			if err != nil {
				return err
			}
			sig, err := sigio.Load(input, channel, rate, role)
			if err != nil {
				return err
			}

			var res detector.Result
			switch role {
			case signal.RoleExternal:
				res, err = detectExternal(settings, sig, startIndex, noDetrend)
			default:
				res, err = detectIntracranial(settings, sig, methodStr)
			}
			if err != nil {
				return err
			}

			fmt.Printf("artifact onset: %.6f s (sample %d, method %s)\n", res.Seconds, res.Index, res.Method)
			if res.Inverted {
				fmt.Println("note: channel polarity was inverted")
			}
			for _, adv := range res.Advisories {
				fmt.Printf("warning: %s\n", adv)
			}

			if sessionID != "" {
				if err := persistOnset(settings, sessionID, role, res); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Recording file (.wav or .csv)")
	cmd.Flags().IntVar(&channel, "channel", 0, "Channel (WAV) or column (CSV) index")
	cmd.Flags().IntVar(&rate, "rate", 0, "Sample rate in Hz, required for CSV input")
	cmd.Flags().StringVar(&roleStr, "role", "lfp", "Stream role: lfp or external")
	cmd.Flags().StringVar(&methodStr, "method", "kernel2", "Intracranial detection method: thresh, kernel1 or kernel2")
	cmd.Flags().IntVar(&startIndex, "start-index", 0, "Skip this many leading samples of the external scan")
	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID for recording the onset in the parameter store")
	cmd.Flags().BoolVar(&noDetrend, "no-detrend", false, "Skip high-pass detrending of the external channel")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func detectExternal(settings *conf.Settings, sig signal.Signal, startIndex int, noDetrend bool) (detector.Result, error) {
	if !noDetrend {
		filtered, err := dsp.Detrend(sig.Samples, sig.Rate, settings.Detection.HighpassCutoff)
		if err != nil {
			return detector.Result{}, err
		}
		sig = signal.New(filtered, sig.Rate, sig.Role)
	}

	sig, inverted := detector.NormalizePolarity(sig, settings.Detection.PolarityTailExclusion)
	res, err := detector.NewExternalDetector(settings.Detection).Detect(sig, startIndex)
	if err != nil {
		return detector.Result{}, err
	}
	res.Inverted = inverted
	return res, nil
}

func detectIntracranial(settings *conf.Settings, sig signal.Signal, methodStr string) (detector.Result, error) {
	method, err := detector.ParseMethod(methodStr)
	if err != nil {
		return detector.Result{}, err
	}
	return detector.NewIntracranialDetector(settings.Detection).Detect(sig, method)
}

func persistOnset(settings *conf.Settings, sessionID string, role signal.Role, res detector.Result) error {
	store := paramstore.NewSQLite(settings.Output.SQLite.Path)
	if err := store.Open(); err != nil {
		return err
	}
	defer store.Close()
	return store.SaveArtifactTime(sessionID, role.String(), res.Seconds, res.Method.String())
}

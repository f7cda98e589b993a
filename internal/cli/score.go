package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/netwatch/posture/internal/bundle"
	"github.com/netwatch/posture/internal/fetch"
	"github.com/netwatch/posture/internal/inspect"
	"github.com/netwatch/posture/internal/output"
	"github.com/netwatch/posture/internal/pipeline"
	"github.com/netwatch/posture/internal/score"
	"github.com/netwatch/posture/pkg/types"
)

var (
	useTestDataFlag bool
	liveSignalsFlag string
	inspectFlag     bool
)

var scoreCmd = &cobra.Command{
	Use:   "score [host]",
	Short: "Score the security posture of a hostname",
	Long: `Fetches scan results for the host from the scan API, runs every
category scorer, and prints the per-category breakdown plus the
aggregated 1-100 score.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().BoolVar(&useTestDataFlag, "use-test-data", false, "score the built-in sample bundle instead of fetching live data")
	scoreCmd.Flags().StringVar(&liveSignalsFlag, "live-signals", "", "JSON content-safety signals from an active browser session")
	scoreCmd.Flags().BoolVar(&inspectFlag, "inspect", false, "derive content-safety signals by fetching and parsing the page locally")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	host := targetFlag
	if len(args) == 1 {
		host = args[0]
	}
	if host == "" {
		return fmt.Errorf("a host is required (positional argument or --target)")
	}

	target, err := types.ParseTarget(host)
	if err != nil {
		return fmt.Errorf("invalid target: %w", err)
	}

	formatter, err := output.GetFormatter(outputFlag)
	if err != nil {
		return err
	}

	live, err := resolveLiveSignals(cmd.Context(), target)
	if err != nil {
		return err
	}

	weights := resolveWeights()
	p := &pipeline.Pipeline{
		Engine:  score.New(score.NewConfig(weights), verboseLogf()),
		Weights: weights,
	}

	var result *types.Result
	if useTestDataFlag {
		// The sample certificate expires 2025-12-15; pin the reference
		// date so the expiry checks are reproducible.
		p.Now = func() time.Time { return time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC) }
		result, err = p.Score(target, sampleBundle(), live)
	} else {
		if baseURLFlag == "" {
			return fmt.Errorf("--base-url (or scan_base_url in the config file) is required for live scoring")
		}
		orch := fetch.NewOrchestrator(fetch.NewClient(baseURLFlag, nil), timeoutFlag, verboseLogf())
		orch.WhoisFallback = whoisFallbackFlag
		if len(appConfig.Endpoints) > 0 {
			orch.SetEndpoints(appConfig.Endpoints)
		}
		p.Fetcher = orch

		ctx, cancel := context.WithTimeout(cmd.Context(), timeoutFlag*4)
		defer cancel()
		result, err = p.Run(ctx, target, live)
	}
	if err != nil {
		return err
	}

	return formatter.Format(os.Stdout, result)
}

// resolveLiveSignals returns content signals from --live-signals JSON,
// from a local page inspection when --inspect is set, or nil.
func resolveLiveSignals(ctx context.Context, target types.Target) (*bundle.ContentSignals, error) {
	if liveSignalsFlag != "" {
		var sig bundle.ContentSignals
		if err := json.Unmarshal([]byte(liveSignalsFlag), &sig); err != nil {
			return nil, fmt.Errorf("parsing --live-signals: %w", err)
		}
		return &sig, nil
	}

	if inspectFlag {
		inspector := inspect.New(&http.Client{Timeout: timeoutFlag})
		ictx, cancel := context.WithTimeout(ctx, timeoutFlag)
		defer cancel()
		sig, err := inspector.Inspect(ictx, target.Host)
		if err != nil {
			return nil, fmt.Errorf("inspecting page: %w", err)
		}
		return sig, nil
	}

	return nil, nil
}

// resolveWeights applies config-file weight overrides on top of the
// defaults. Unknown category names are accepted as-is so new scorers
// can be weighted without a config schema change.
func resolveWeights() score.Weights {
	weights := score.DefaultWeights()
	if appConfig != nil {
		for name, w := range appConfig.Weights {
			weights[types.Category(name)] = w
		}
	}
	return weights
}

func verboseLogf() func(format string, a ...any) {
	if !verboseFlag {
		return nil
	}
	return func(format string, a ...any) {
		fmt.Fprintf(os.Stderr, format+"\n", a...)
	}
}

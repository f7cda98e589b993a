// Package cli implements the posture command tree.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/netwatch/posture/internal/config"
)

var version = "dev"

var (
	targetFlag        string
	outputFlag        string
	verboseFlag       bool
	timeoutFlag       time.Duration
	baseURLFlag       string
	whoisFallbackFlag bool
)

// appConfig holds the loaded configuration, available after PersistentPreRunE.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "posture",
	Short: "posture — security posture scoring for hostnames",
	Long: `Posture collects heterogeneous scan results for a hostname,
scores each security category with a rule engine, and folds the
category scores into a single 1-100 posture score.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		config.ApplyFlags(cfg, cmd)

		// Sync config values back to flag variables so all commands
		// pick up config-file and env-var defaults transparently.
		outputFlag = cfg.OutputFormat
		timeoutFlag = cfg.Timeout
		baseURLFlag = cfg.ScanBaseURL
		whoisFallbackFlag = cfg.WhoisFallback

		appConfig = cfg
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&targetFlag, "target", "t", "", "target hostname or URL")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "table", "output format: table, json")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 15*time.Second, "per-endpoint fetch timeout")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "base URL of the scan API")
	rootCmd.PersistentFlags().BoolVar(&whoisFallbackFlag, "whois-fallback", true, "synthesize registration data from WHOIS when the rdap endpoint fails")

	rootCmd.AddCommand(versionCmd)
}

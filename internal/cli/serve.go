package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netwatch/posture/internal/fetch"
	"github.com/netwatch/posture/internal/pipeline"
	"github.com/netwatch/posture/internal/score"
	"github.com/netwatch/posture/internal/web"
)

var addrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the posture scoring API server",
	Long:  "Exposes the scoring pipeline over HTTP at POST /api/v1/score.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", ":3000", "listen address (host:port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if baseURLFlag == "" {
		return fmt.Errorf("--base-url (or scan_base_url in the config file) is required")
	}

	orch := fetch.NewOrchestrator(fetch.NewClient(baseURLFlag, nil), timeoutFlag, verboseLogf())
	orch.WhoisFallback = whoisFallbackFlag
	if len(appConfig.Endpoints) > 0 {
		orch.SetEndpoints(appConfig.Endpoints)
	}

	weights := resolveWeights()
	p := &pipeline.Pipeline{
		Fetcher: orch,
		Engine:  score.New(score.NewConfig(weights), verboseLogf()),
		Weights: weights,
	}

	s := web.NewServer(addrFlag, p)
	fmt.Fprintf(cmd.OutOrStdout(), "posture API server listening on %s\n", addrFlag)
	return s.Start()
}

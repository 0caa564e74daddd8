package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strrl/stance/internal/display"
	"github.com/strrl/stance/internal/history"
	"github.com/strrl/stance/internal/insights"
)

var insightsDemo bool

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "SQL analytics over the current session's interactions",
	Long: `Compute per-persona, per-tier, and latency aggregates over the session
history with an in-memory DuckDB database.

Interaction history lives only for the process lifetime, so a standalone
invocation has nothing to report on its own; pass --demo to run the demo
queries first and analyze their outcomes.`,
	RunE: runInsights,
}

func init() {
	rootCmd.AddCommand(insightsCmd)

	insightsCmd.Flags().BoolVar(&insightsDemo, "demo", false, "run the demo queries first, then report")
}

func runInsights(cmd *cobra.Command, args []string) error {
	if !insightsDemo {
		fmt.Println("No session history: interactions are not persisted between runs.")
		fmt.Println("Use 'stance insights --demo' to generate a session, or 'insights' inside 'stance chat'.")
		return nil
	}

	p, _, closer, err := buildPipeline()
	if err != nil {
		return err
	}
	defer closeQuietly(closer)

	runDemo(p)
	return showInsights(p.Entries())
}

func showInsights(entries []history.Entry) error {
	summary, err := insights.Report(entries)
	if err != nil {
		return fmt.Errorf("failed to compute insights: %w", err)
	}
	fmt.Println(display.InsightsReport(summary))
	return nil
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strrl/stance/internal/display"
	"github.com/strrl/stance/internal/history"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Process a single query and render the resulting record",
	Long: `Run one query through the normalization pipeline and print the record.
With --json the raw record is emitted for scripting instead of the panel.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().BoolVar(&askJSON, "json", false, "emit the raw record as JSON")
}

func runAsk(cmd *cobra.Command, args []string) error {
	p, _, closer, err := buildPipeline()
	if err != nil {
		return err
	}
	defer closeQuietly(closer)

	result, err := p.Process(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	if askJSON {
		payload, err := json.MarshalIndent(result.Record, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		fmt.Println(string(payload))
		return nil
	}

	fmt.Println(display.QueryPanel(args[0]))
	fmt.Println(display.RecordPanel(result.Record, result.Latency))
	if result.Tier == history.TierConnection {
		fmt.Println(display.ConnectionHelp())
	}
	return nil
}

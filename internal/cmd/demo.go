package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strrl/stance/internal/display"
	"github.com/strrl/stance/internal/pipeline"
)

// The canonical demo queries, chosen to exercise different personas and
// behaviors.
var demoQueries = []string{
	"Help me understand machine learning concepts",
	"What's the best approach for solving complex problems?",
	"I'm feeling overwhelmed with my project workload",
	"Compare different architectural patterns for web apps",
	"How do I stay creative when facing constraints?",
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the scripted demo queries and show the stats table",
	RunE:  runDemoCmd,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemoCmd(cmd *cobra.Command, args []string) error {
	p, _, closer, err := buildPipeline()
	if err != nil {
		return err
	}
	defer closeQuietly(closer)

	runDemo(p)
	fmt.Println(display.StatsTable(p.Stats()))
	return nil
}

// runDemo processes each demo query in order, rendering every result. Shared
// by the demo command and the chat meta-command.
func runDemo(p *pipeline.Pipeline) {
	fmt.Println("\n🎭 Running demo queries...")
	for i, query := range demoQueries {
		fmt.Printf("\nDemo %d: %s\n", i+1, query)
		result, _ := p.Process(context.Background(), query)
		fmt.Println(display.RecordPanel(result.Record, result.Latency))
		if p.Stats().TotalRequests <= 3 {
			fmt.Println(display.Guide())
		}
	}
}

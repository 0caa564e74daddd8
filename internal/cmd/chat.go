package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strrl/stance/internal/display"
	"github.com/strrl/stance/internal/history"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat with cognitive-stance output",
	Long: `Start an interactive session. Each line is processed through the
normalization pipeline and the resulting record is rendered.

Meta-commands: stats, demo, insights, help, quit/exit.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	p, logger, closer, err := buildPipeline()
	if err != nil {
		return err
	}
	defer closeQuietly(closer)

	fmt.Println("💬 Interactive chat - type your questions, 'help' for the guide, 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nYou> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(input) {
		case "":
			continue
		case "quit", "exit", "q":
			fmt.Println("Session ended.")
			return nil
		case "stats":
			fmt.Println(display.StatsTable(p.Stats()))
			continue
		case "demo":
			runDemo(p)
			continue
		case "insights":
			if err := showInsights(p.Entries()); err != nil {
				logger.Error().Err(err).Msg("insights failed")
			}
			continue
		case "help", "explain", "guide":
			fmt.Println(display.Guide())
			continue
		}

		result, err := p.Process(context.Background(), input)
		if err != nil {
			return fmt.Errorf("processing failed: %w", err)
		}

		fmt.Println(display.RecordPanel(result.Record, result.Latency))
		if result.Tier == history.TierConnection {
			fmt.Println(display.ConnectionHelp())
		}
		if p.Stats().TotalRequests <= 3 {
			fmt.Println(display.Guide())
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

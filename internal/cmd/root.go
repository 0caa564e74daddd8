package cmd

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/strrl/stance/internal/config"
	"github.com/strrl/stance/internal/logging"
	"github.com/strrl/stance/internal/ollama"
	"github.com/strrl/stance/internal/pipeline"
)

var (
	flagHost        string
	flagModel       string
	flagTemperature float64
	flagVerbose     bool
	flagLogFile     string
)

var rootCmd = &cobra.Command{
	Use:   "stance",
	Short: "Cognitive-stance normalization for local LLM output",
	Long: `stance sends queries to a local Ollama model, strictly validates the
structured cognitive-stance reply, and degrades gracefully through partial
reconstruction and heuristic synthesis when the model output is unusable.
A structurally valid record is produced on every path.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = false

	rootCmd.PersistentFlags().StringVar(&flagHost, "host", "", "Ollama host (default http://localhost:11434)")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "model to use (default mistral-small3.2:latest)")
	rootCmd.PersistentFlags().Float64Var(&flagTemperature, "temperature", 0, "sampling temperature")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "also write logs to this file")
}

// buildPipeline assembles the configured pipeline: defaults and environment
// from config, overridden by the persistent flags.
func buildPipeline() (*pipeline.Pipeline, zerolog.Logger, io.Closer, error) {
	logger, closer, err := logging.Setup(logging.Config{Verbose: flagVerbose, LogFile: flagLogFile})
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}

	cfg := config.Load()
	if flagHost != "" {
		cfg.Host = flagHost
	}
	if flagModel != "" {
		cfg.Model = flagModel
	}
	if flagTemperature != 0 {
		cfg.Temperature = flagTemperature
	}

	client := ollama.NewClient(ollama.Config{
		Host:        cfg.Host,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
		Timeout:     cfg.Timeout,
	})

	return pipeline.New(client, logger), logger, closer, nil
}

func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/TobiSchelling/storyrank/internal/config"
	"github.com/TobiSchelling/storyrank/internal/logging"
	"github.com/TobiSchelling/storyrank/internal/pipeline"
	"github.com/TobiSchelling/storyrank/internal/report"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	inputPath  string
	format     string
	workers    int
	explain    bool
	cfg        *config.Config
	logger     *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "storyrank",
	Short: "Rank stories by weighted reference counts",
	Long: "storyrank reads stories and their references from stdin, scores each story in a date\n" +
		"window by how often other stories reference it within three hops, and prints the top N.",
	Version:      version,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			logger = logging.New(cmd.ErrOrStderr(), "info", verbose)
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		logger = logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, verbose)
		if path != "" {
			logger.Debug("loaded config", "path", path)
		}
		return applyFlags(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		in, closeInput, err := openInput(cmd)
		if err != nil {
			return err
		}
		defer closeInput()

		pipe := pipeline.New(cfg, logger)
		result := pipe.Run(context.Background(), in, cmd.OutOrStdout())
		return result.Err()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Read input from a file instead of stdin")
	rootCmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, markdown, html, json")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Number of scoring goroutines")
	rootCmd.Flags().BoolVar(&explain, "explain", false, "Include level counts in markdown, html and json output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// applyFlags lets explicitly set flags override the loaded config.
func applyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = format
	}
	if flags.Changed("workers") {
		if workers < 1 {
			return fmt.Errorf("--workers must be at least 1, got %d", workers)
		}
		cfg.Scoring.Workers = workers
	}
	if flags.Changed("explain") {
		cfg.Output.Explain = explain
	}
	if !report.ValidFormat(cfg.Output.Format) {
		return fmt.Errorf("unknown output format %q", cfg.Output.Format)
	}
	return nil
}

func openInput(cmd *cobra.Command) (io.Reader, func(), error) {
	if inputPath == "" || inputPath == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "storyrank", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to ~/.config/storyrank/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created config: %s\n", target)
		return nil
	},
}

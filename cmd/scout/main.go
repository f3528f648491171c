package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lerenn/scout/pkg/config"
	"github.com/lerenn/scout/pkg/drift"
	"github.com/lerenn/scout/pkg/health"
	"github.com/lerenn/scout/pkg/logging"
	"github.com/lerenn/scout/pkg/scout"
	"github.com/lerenn/scout/pkg/tools"
)

var (
	configPath string
	jsonOutput bool
	verbose    bool
	treeDepth  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scout",
		Short: "Scout inspects source trees and reports cross-codebase version drift",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.Init(verbose)
			// Best effort; GITHUB_TOKEN may come from the environment.
			_ = godotenv.Load()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Emit structured JSON on stdout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	treeCmd := newTreeCmd()
	treeCmd.Flags().IntVarP(&treeDepth, "depth", "d", 3, "Maximum tree depth")

	rootCmd.AddCommand(newHealthCmd(), newDriftCmd(), treeCmd, newAnalyzeCmd())

	if err := rootCmd.Execute(); err != nil {
		logging.L().Error("Command execution failed", zap.Error(err))
		os.Exit(1)
	}
}

func newDriftCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "drift [root]",
		Aliases: []string{"cross-platform"},
		Short:   "Report cross-codebase version drift for tracked packages",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			reports, err := run(cmd.Context(), args, func(s *scout.Scout, ctx context.Context, root string) ([]drift.Report, error) {
				return s.Drift(ctx, root)
			})
			if err != nil {
				return err
			}
			if jsonOutput {
				return emitJSON(reports)
			}
			fmt.Print(drift.FormatReports(reports))
			return nil
		},
	}
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health [root]",
		Short: "Report which recognized manifest types each codebase declares",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			checks, err := run(cmd.Context(), args, func(s *scout.Scout, ctx context.Context, root string) ([]health.Check, error) {
				return s.Health(ctx, root)
			})
			if err != nil {
				return err
			}
			if jsonOutput {
				return emitJSON(checks)
			}
			fmt.Print(health.FormatChecks(checks))
			return nil
		},
	}
}

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree [root]",
		Short: "Render the project directory tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			out, fellBack, err := tools.Tree(cmd.Context(), tools.NewRunner(), rootArg(args), treeDepth)
			if err != nil {
				return err
			}
			if fellBack {
				fmt.Fprintln(os.Stderr, "warning: neither eza nor tree installed, using built-in renderer")
			}
			fmt.Print(out)
			return nil
		},
	}
}

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [root]",
		Short: "Report per-language line counts via tokei",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			counts, err := tools.Analyze(cmd.Context(), tools.NewRunner(), rootArg(args))
			if err == tools.ErrUnavailable {
				fmt.Fprintln(os.Stderr, "warning: tokei not installed, skipping line counts")
				return nil
			}
			if err != nil {
				return err
			}
			if jsonOutput {
				return emitJSON(counts)
			}
			fmt.Print(tools.FormatCounts(counts))
			return nil
		},
	}
}

// run loads config, builds a Scout and invokes one of its operations.
func run[T any](ctx context.Context, args []string, op func(*scout.Scout, context.Context, string) ([]T, error)) ([]T, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	s := scout.New(cfg, os.Getenv("GITHUB_TOKEN"))
	return op(s, ctx, rootArg(args))
}

// loadConfig reads the configured file, or returns an empty config (codebase
// discovery mode) when no file was requested.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return &config.Config{}, nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", configPath, err)
	}
	return cfg, nil
}

func rootArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

func emitJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

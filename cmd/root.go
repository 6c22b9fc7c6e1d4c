// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"vembed/internal/config"
	"vembed/internal/media"
	"vembed/internal/ui"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagPlatform string
	flagJSON     bool
	flagDebug    bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "vembed [url...]",
	Short: "Recognize vertical video URLs and build embed data",
	Long: `vembed recognizes YouTube Shorts, Instagram Reels and TikTok URLs,
extracts the video identifier and prints the canonical iframe embed URL.
Without arguments it reads URLs from stdin, or prompts when stdin is a terminal.`,
	Args:              cobra.ArbitraryArgs,
	PersistentPreRunE: loadConfig,
	RunE:              parseRun,
	SilenceUsage:      true,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPlatform, "platform", "p", "", "Platform hint: auto | youtube | instagram | tiktok")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Output results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(platformsCmd)
	rootCmd.AddCommand(oembedCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagPlatform != "" {
		cfg.Platform = flagPlatform
	}
	if flagJSON {
		cfg.Format = "json"
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Debug {
		log.SetOutput(os.Stderr)
		log.SetPrefix("[vembed] ")
	} else {
		log.SetOutput(os.Stderr)
		log.SetFlags(0)
	}

	return nil
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		log.Printf(format, args...)
	}
}

// quietCancel treats an aborted prompt as a clean exit.
func quietCancel(err error) error {
	if errors.Is(err, ui.ErrCancelled) {
		debugf("prompt cancelled")
		return nil
	}
	return err
}

// hintFlag returns the explicit --platform value, if one was given.
func hintFlag() (media.Platform, bool) {
	if flagPlatform == "" {
		return media.Unknown, false
	}
	p, err := media.ParseHint(flagPlatform)
	if err != nil {
		return media.Unknown, false
	}
	return p, true
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the vembed version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vembed %s\n", Version)
	},
}

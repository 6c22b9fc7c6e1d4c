package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"vembed/internal/config"
	"vembed/internal/ui"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clean the local oEmbed cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached oEmbed entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCache()
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer c.Close()

		entries, err := c.List(cmd.Context())
		if err != nil {
			return err
		}

		if cfg.JSON() {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}

		if len(entries) == 0 {
			fmt.Println("Cache is empty.")
			return nil
		}

		p := ui.NewPrinter(os.Stdout)
		for _, e := range entries {
			age := time.Since(e.FetchedAt).Round(time.Minute)
			p.Field(e.Platform, fmt.Sprintf("%s (%s ago)", e.SourceURL, age))
		}
		return nil
	},
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove entries older than the configured TTL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCache()
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer c.Close()

		n, err := c.Prune(cmd.Context(), cfg.TTL())
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d expired entr%s.\n", n, plural(n))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCache()
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer c.Close()

		n, err := c.Clear(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d entr%s.\n", n, plural(n))
		return nil
	},
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the cache database location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := cfg.CachePath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheListCmd, cachePruneCmd, cacheClearCmd, cachePathCmd)
}

func plural(n int64) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

// configPathOrDefault names the config file for messages.
func configPathOrDefault() string {
	path, err := config.ConfigPath()
	if err != nil {
		return "config.toml"
	}
	return path
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"vembed/internal/extract"
	"vembed/internal/history"
	"vembed/internal/media"
	"vembed/internal/ui"
)

var flagHistoryRemove bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently parsed videos",
	Long: `List videos recognized by earlier parse runs, newest first. In a terminal
an entry can be picked to print its embed data again, or removed with --remove.`,
	Args: cobra.NoArgs,
	RunE: historyRun,
}

func init() {
	historyCmd.Flags().BoolVar(&flagHistoryRemove, "remove", false, "Remove the selected entry instead of printing it")
}

func historyRun(cmd *cobra.Command, args []string) error {
	entries, err := history.Load()
	if err != nil {
		return err
	}

	if cfg.JSON() {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if entries == nil {
			entries = []history.Entry{}
		}
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No history yet.")
		return nil
	}

	items := history.FormatForDisplay(entries)
	if !ui.IsTerminal(os.Stdin) {
		for _, item := range items {
			fmt.Println(item)
		}
		return nil
	}

	idx, err := ui.Select("History", items)
	if err != nil {
		return quietCancel(err)
	}
	// items are newest first
	picked := entries[len(entries)-1-idx]

	if flagHistoryRemove {
		if err := history.Remove(picked.Platform, picked.VideoID); err != nil {
			return err
		}
		fmt.Printf("Removed %s %s\n", picked.Platform, picked.VideoID)
		return nil
	}

	ref, err := extract.Parse(picked.SourceURL, picked.Platform)
	if err != nil {
		return fmt.Errorf("%s: %w", describe(err), err)
	}
	printReference(ui.NewPrinter(os.Stdout), ref)
	return nil
}

// recordHistory saves successful parses when history is enabled.
func recordHistory(results []extract.Result) {
	if !cfg.History {
		return
	}
	now := time.Now()
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if err := history.Save(r.Ref, now); err != nil {
			debugf("saving history: %v", err)
			return
		}
	}
}

// saveReference records a single reference when history is enabled.
func saveReference(ref media.VideoReference) {
	recordHistory([]extract.Result{{Input: ref.SourceURL, Ref: ref}})
}

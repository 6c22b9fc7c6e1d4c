package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"vembed/internal/extract"
	"vembed/internal/media"
	"vembed/internal/ui"
)

var parseCmd = &cobra.Command{
	Use:   "parse [url...]",
	Short: "Recognize video URLs and print their embed data",
	Example: `  vembed parse https://youtube.com/shorts/dQw4w9WgXcQ
  vembed parse -p youtube dQw4w9WgXcQ
  cat urls.txt | vembed parse --json`,
	Args: cobra.ArbitraryArgs,
	RunE: parseRun,
}

// parseRun is also the default command: vembed <url...>
func parseRun(cmd *cobra.Command, args []string) error {
	inputs, hint, err := collectInputs(args, cfg.Hint())
	if err != nil {
		return quietCancel(err)
	}
	debugf("parsing %d input(s), hint %s", len(inputs), hintName(hint))

	results := extract.ParseAll(inputs, hint)
	recordHistory(results)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			debugf("parse %q: %v", r.Input, r.Err)
		}
	}

	if cfg.JSON() {
		if err := writeJSON(os.Stdout, results); err != nil {
			return err
		}
	} else {
		printResults(ui.NewPrinter(os.Stdout), results)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d input(s) could not be parsed", failed, len(results))
	}
	return nil
}

// collectInputs returns URLs from args, piped stdin, or an interactive prompt.
// The prompt also asks for a platform hint unless --platform was given.
func collectInputs(args []string, hint media.Platform) ([]string, media.Platform, error) {
	if len(args) > 0 {
		return args, hint, nil
	}

	if !ui.IsTerminal(os.Stdin) {
		lines, err := readLines(os.Stdin)
		if err != nil {
			return nil, hint, fmt.Errorf("reading stdin: %w", err)
		}
		if len(lines) == 0 {
			return nil, hint, fmt.Errorf("no URLs on stdin")
		}
		return lines, hint, nil
	}

	url, err := ui.Input("Video URL", "https://youtube.com/shorts/...")
	if err != nil {
		return nil, hint, err
	}

	if _, explicit := hintFlag(); !explicit {
		choices := append([]media.Platform{media.Unknown}, media.Platforms...)
		items := make([]string, len(choices))
		for i, p := range choices {
			items[i] = p.DisplayName()
		}
		idx, err := ui.Select("Platform", items)
		if err != nil {
			return nil, hint, err
		}
		hint = choices[idx]
	}

	return []string{url}, hint, nil
}

// readLines reads one URL per line, skipping blanks and # comments.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// describe turns a parse failure into the message shown to editors.
func describe(err error) string {
	switch {
	case errors.Is(err, media.ErrEmptyInput):
		return "Please provide a video URL."
	case errors.Is(err, media.ErrUnsupportedPlatform):
		return "Invalid video URL. Supported platforms: YouTube Shorts, Instagram Reels, TikTok."
	case errors.Is(err, media.ErrNoIdentifierFound):
		return "No video ID found in the URL for the selected platform."
	default:
		return err.Error()
	}
}

// errorCode names a parse failure for JSON output.
func errorCode(err error) string {
	switch {
	case errors.Is(err, media.ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, media.ErrUnsupportedPlatform):
		return "unsupported_platform"
	case errors.Is(err, media.ErrNoIdentifierFound):
		return "no_identifier_found"
	default:
		return "error"
	}
}

func hintName(p media.Platform) string {
	if p == media.Unknown {
		return "auto"
	}
	return p.String()
}

// jsonResult is the JSON shape of one parse outcome.
type jsonResult struct {
	Input string `json:"input"`
	*media.VideoReference
	Element string `json:"element_id,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func toJSONResult(r extract.Result) jsonResult {
	out := jsonResult{Input: r.Input}
	if r.Err != nil {
		out.Error = errorCode(r.Err)
		out.Message = describe(r.Err)
		return out
	}
	ref := r.Ref
	out.VideoReference = &ref
	out.Element = ref.ElementID()
	return out
}

// writeJSON prints a single object for one result and an array otherwise.
func writeJSON(w io.Writer, results []extract.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if len(results) == 1 {
		return enc.Encode(toJSONResult(results[0]))
	}

	out := make([]jsonResult, len(results))
	for i, r := range results {
		out[i] = toJSONResult(r)
	}
	return enc.Encode(out)
}

func printResults(p *ui.Printer, results []extract.Result) {
	for i, r := range results {
		if i > 0 {
			p.Blank()
		}
		if r.Err != nil {
			p.Field("input", r.Input)
			p.Error(describe(r.Err))
			continue
		}
		printReference(p, r.Ref)
	}
}

func printReference(p *ui.Printer, ref media.VideoReference) {
	p.Field("platform", ref.Platform.String())
	p.Field("video id", ref.VideoID)
	p.Field("embed url", ref.EmbedURL)
	p.Field("source", ref.SourceURL)
	p.Field("element id", ref.ElementID())
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"vembed/internal/httputil"
	"vembed/internal/media"
	"vembed/internal/provider"
	"vembed/internal/ui"
)

var detectCmd = &cobra.Command{
	Use:   "detect <url>",
	Short: "Print the platform a URL belongs to",
	Args:  cobra.ExactArgs(1),
	RunE:  detectRun,
}

func detectRun(cmd *cobra.Command, args []string) error {
	url := httputil.SanitizeURL(args[0])
	platform, ok := provider.Detect(url)
	debugf("detect %q -> %s (%v)", url, platform, ok)

	if cfg.JSON() {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]interface{}{
			"url":       url,
			"platform":  platform,
			"supported": ok,
		}); err != nil {
			return err
		}
	} else {
		fmt.Println(platform)
	}

	if !ok {
		return fmt.Errorf("%w: %q", media.ErrUnsupportedPlatform, args[0])
	}
	return nil
}

var validateCmd = &cobra.Command{
	Use:   "validate <video-id>",
	Short: "Check a video ID has the right shape for a platform",
	Long: `Check a video ID obtained elsewhere against the platform's ID format.
The platform must be given explicitly with --platform.`,
	Example: "  vembed validate -p youtube dQw4w9WgXcQ",
	Args:    cobra.ExactArgs(1),
	RunE:    validateRun,
}

func validateRun(cmd *cobra.Command, args []string) error {
	platform, ok := hintFlag()
	if !ok || platform == media.Unknown {
		return fmt.Errorf("validate needs --platform youtube|instagram|tiktok")
	}

	id := args[0]
	valid := provider.IsValidID(id, platform)

	if cfg.JSON() {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]interface{}{
			"video_id": id,
			"platform": platform,
			"valid":    valid,
		}); err != nil {
			return err
		}
	} else if valid {
		fmt.Printf("%s: valid %s video ID\n", id, platform)
	} else {
		fmt.Printf("%s: not a valid %s video ID\n", id, platform)
	}

	if !valid {
		return fmt.Errorf("invalid %s video ID %q", platform, id)
	}
	return nil
}

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List supported platforms and accepted URL forms",
	Args:  cobra.NoArgs,
	RunE:  platformsRun,
}

func platformsRun(cmd *cobra.Command, args []string) error {
	providers := provider.All()

	if cfg.JSON() {
		type entry struct {
			Platform media.Platform `json:"platform"`
			Name     string         `json:"name"`
			Shapes   []string       `json:"shapes"`
		}
		out := make([]entry, len(providers))
		for i, p := range providers {
			out[i] = entry{Platform: p.Platform(), Name: p.Platform().DisplayName(), Shapes: p.Shapes()}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	printer := ui.NewPrinter(os.Stdout)
	for i, p := range providers {
		if i > 0 {
			printer.Blank()
		}
		printer.Heading(fmt.Sprintf("%s (%s)", p.Platform().DisplayName(), p.Platform()))
		printer.Line("  " + strings.Join(p.Shapes(), "\n  "))
	}
	return nil
}

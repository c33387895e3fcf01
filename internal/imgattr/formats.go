package imgattr

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"go.followtheprocess.codes/hue"
	"go.followtheprocess.codes/imgattr/internal/format"
)

// dimmed is the style for secondary information.
const dimmed = hue.BrightBlack | hue.Italic

// Formats implements the formats subcommand, listing every export format.
func (a App) Formats() error {
	tw := tabwriter.NewWriter(a.stdout, 0, 8, 2, ' ', 0) //nolint:mnd // Standard tabwriter settings

	for _, f := range format.All() {
		extensions := make([]string, 0, len(f.Extensions))
		for _, ext := range f.Extensions {
			extensions = append(extensions, "."+ext)
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\n", hue.Bold.Text(f.Key()), strings.Join(extensions, ", "), dimmed.Text(f.Description))
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("could not write formats: %w", err)
	}

	return nil
}

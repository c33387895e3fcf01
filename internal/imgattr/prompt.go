package imgattr

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"go.followtheprocess.codes/imgattr/internal/format"
)

// ErrCancelled is returned when the user abandons an interactive prompt.
var ErrCancelled = errors.New("cancelled")

// picker asks the user to choose one or more formats, reading from in and drawing to out.
type picker func(ctx context.Context, in io.Reader, out io.Writer) ([]format.Format, error)

// promptFormats is the default picker, a multi select menu of every registered format.
func promptFormats(ctx context.Context, in io.Reader, out io.Writer) ([]format.Format, error) {
	formats := format.All()

	options := make([]huh.Option[string], 0, len(formats))
	for _, f := range formats {
		options = append(options, huh.NewOption(f.Description, f.Key()))
	}

	var chosen []string

	field := huh.NewMultiSelect[string]().
		Title("Export formats").
		Description("Space to toggle, enter to confirm").
		Options(options...).
		Validate(func(chosen []string) error {
			if len(chosen) == 0 {
				return errors.New("pick at least one format")
			}

			return nil
		}).
		Value(&chosen)

	err := huh.NewForm(huh.NewGroup(field)).WithInput(in).WithOutput(out).RunWithContext(ctx)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrCancelled
		}

		return nil, fmt.Errorf("could not prompt for formats: %w", err)
	}

	picked := make([]format.Format, 0, len(chosen))
	for _, name := range chosen {
		f, err := format.ByName(name)
		if err != nil {
			return nil, err
		}

		picked = append(picked, f)
	}

	return picked, nil
}

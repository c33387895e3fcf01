package imgattr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/quick"
	"go.followtheprocess.codes/imgattr/internal/collect"
	"go.followtheprocess.codes/imgattr/internal/document"
	"go.followtheprocess.codes/imgattr/internal/format"
	"go.followtheprocess.codes/imgattr/internal/manifest"
	"go.followtheprocess.codes/imgattr/internal/raster"
	"go.followtheprocess.codes/imgattr/internal/value"
	"go.followtheprocess.codes/log"
	"go.followtheprocess.codes/msg"
	"golang.org/x/sync/errgroup"
)

// Stdout is the output path meaning "write to stdout".
const Stdout = "-"

var (
	// ErrNoOutput is returned when an export has no destination to write to.
	ErrNoOutput = errors.New("no output destination")

	// ErrNoFormat is returned when no export format was given and none could be inferred.
	ErrNoFormat = errors.New("no export format")

	// ErrSameFile is returned when an export would overwrite its own input.
	ErrSameFile = errors.New("output would overwrite the input file")
)

// Highlighting settings for output written to a terminal.
const (
	highlightFormatter = "terminal256"
	highlightStyle     = "monokai"
)

// ExportOptions are the options passed to the export subcommand.
type ExportOptions struct {
	// File is the image or manifest to export the attributes of.
	File string

	// Output is where to write the export, [Stdout] for stdout and empty to write
	// next to File.
	Output string

	// DefaultFormat is the format used when neither Formats nor Output choose one.
	DefaultFormat string

	// Formats are the names of the formats to export, e.g. xml, json.
	Formats []string

	// NoColor disables syntax highlighting of stdout.
	NoColor bool

	// Debug enables debug logging.
	Debug bool
}

// Validate reports whether the ExportOptions is valid, returning a non-nil
// error if it's not.
func (e ExportOptions) Validate() error {
	if e.File == "" {
		return errors.New("no file to export")
	}

	for _, name := range e.Formats {
		if _, err := format.ByName(name); err != nil {
			return fmt.Errorf("invalid option for --format: %w", err)
		}
	}

	if e.Output == Stdout && len(e.Formats) > 1 {
		return fmt.Errorf("only one --format may be written to stdout, got %d", len(e.Formats))
	}

	return nil
}

// target is a single rendered output.
type target struct {
	format format.Format
	path   string // Empty means stdout
}

// Export implements the export subcommand.
//
// One attribute tree is collected per format, one after another, then each is
// rendered and written concurrently. Warnings about unreadable item attributes are
// logged once, not once per format.
func (a App) Export(ctx context.Context, options ExportOptions) error {
	if err := options.Validate(); err != nil {
		return err
	}

	logger := a.logger.Prefixed("export").With(slog.String("file", options.File))
	logger.Debug(
		"Export configuration",
		slog.String("version", a.version),
		slog.String("options", fmt.Sprintf("%+v", options)),
	)

	start := time.Now()

	img, err := open(options.File)
	if err != nil {
		return err
	}

	formats, err := a.resolveFormats(ctx, options, logger)
	if err != nil {
		return err
	}

	targets, err := destinations(options.File, options.Output, formats)
	if err != nil {
		return err
	}

	doc, err := img.Document()
	if err != nil {
		return fmt.Errorf("could not build document from %s: %w", options.File, err)
	}

	trees, err := collectTrees(ctx, doc, targets, logger)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	group := errgroup.Group{}

	for i, target := range targets {
		group.Go(func() error {
			return a.write(target, trees[i], !options.NoColor)
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	for _, target := range targets {
		if target.path != "" {
			msg.Fsuccess(a.stdout, "Exported %s to %s", target.format.Name, target.path)
		}
	}

	logger.Debug("Export finished", slog.Int("formats", len(targets)), slog.Duration("took", time.Since(start)))

	return nil
}

// collectTrees collects a fresh attribute tree of doc for every target.
//
// Every collection reads the same document so item warnings are only logged by the first,
// later collections log them nowhere.
func collectTrees(ctx context.Context, doc document.Image, targets []target, logger *log.Logger) ([]*value.Mapping, error) {
	trees := make([]*value.Mapping, 0, len(targets))
	quiet := log.New(io.Discard)

	for i, target := range targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logger.Debug("Collecting attributes", slog.String("format", target.format.Name))

		warnings := logger
		if i > 0 {
			warnings = quiet
		}

		tree, err := collect.Image(doc, warnings)
		if err != nil {
			return nil, fmt.Errorf("could not collect attributes: %w", err)
		}

		trees = append(trees, tree)
	}

	return trees, nil
}

// open loads file as a manifest if it has a manifest extension, otherwise as a
// raster image.
func open(file string) (*manifest.Image, error) {
	if _, ok := manifest.SyntaxOf(file); ok {
		return manifest.Load(file)
	}

	return raster.Load(file)
}

// resolveFormats works out which formats to export.
//
// In order of precedence: the formats named in options, the format implied by the
// output extension, the configured default and finally an interactive prompt.
func (a App) resolveFormats(ctx context.Context, options ExportOptions, logger *log.Logger) ([]format.Format, error) {
	if len(options.Formats) != 0 {
		formats := make([]format.Format, 0, len(options.Formats))
		for _, name := range options.Formats {
			f, err := format.ByName(name)
			if err != nil {
				return nil, err
			}

			if !slices.ContainsFunc(formats, func(seen format.Format) bool { return seen.Name == f.Name }) {
				formats = append(formats, f)
			}
		}

		return formats, nil
	}

	if options.Output != "" && options.Output != Stdout {
		f, err := format.ByPath(options.Output)
		if err == nil {
			logger.Debug("Format taken from output extension", slog.String("format", f.Name))
			return []format.Format{f}, nil
		}

		logger.Debug("Output extension names no format", slog.String("output", options.Output))
	}

	if options.DefaultFormat != "" {
		f, err := format.ByName(options.DefaultFormat)
		if err != nil {
			return nil, fmt.Errorf("invalid default format: %w", err)
		}

		logger.Debug("Using default format", slog.String("format", f.Name))

		return []format.Format{f}, nil
	}

	if !a.interactive {
		return nil, fmt.Errorf("%w: pass --format or set a default format in the config file", ErrNoFormat)
	}

	logger.Debug("Prompting for formats")

	formats, err := a.picker(ctx, a.stdin, a.stderr)
	if err != nil {
		return nil, err
	}

	if options.Output == Stdout && len(formats) > 1 {
		return nil, fmt.Errorf("only one format may be written to stdout, picked %d", len(formats))
	}

	return formats, nil
}

// destinations returns where each format is written.
//
// With no output each format is written next to file with its own extension, with more
// than one format the extension of output is replaced by each format's extension.
func destinations(file, output string, formats []format.Format) ([]target, error) {
	if len(formats) == 0 {
		return nil, ErrNoFormat
	}

	if output == Stdout {
		if len(formats) != 1 {
			return nil, fmt.Errorf("only one format may be written to stdout, got %d", len(formats))
		}

		return []target{{format: formats[0]}}, nil
	}

	targets := make([]target, 0, len(formats))

	if output != "" && len(formats) == 1 {
		targets = append(targets, target{format: formats[0], path: output})
	} else {
		base := output
		if base == "" {
			base = file
		}

		stem := strings.TrimSuffix(base, filepath.Ext(base))
		if stem == "" || strings.HasSuffix(stem, string(filepath.Separator)) {
			return nil, fmt.Errorf("%w: cannot derive a file name from %q", ErrNoOutput, base)
		}

		for _, f := range formats {
			targets = append(targets, target{format: f, path: stem + f.Extension()})
		}
	}

	for _, target := range targets {
		if strings.TrimSpace(target.path) == "" {
			return nil, ErrNoOutput
		}

		if filepath.Clean(target.path) == filepath.Clean(file) {
			return nil, fmt.Errorf("%w: %s", ErrSameFile, file)
		}
	}

	return targets, nil
}

// write renders tree in the target's format and writes it in a single write.
func (a App) write(target target, tree *value.Mapping, color bool) error {
	buf := &bytes.Buffer{}
	if err := target.format.Exporter.Export(buf, tree); err != nil {
		return fmt.Errorf("could not render %s: %w", target.format.Name, err)
	}

	if target.path == "" {
		if color && isTerminal(a.stdout) {
			if err := quick.Highlight(a.stdout, buf.String(), target.format.Key(), highlightFormatter, highlightStyle); err != nil {
				return fmt.Errorf("could not highlight %s: %w", target.format.Name, err)
			}

			return nil
		}

		if _, err := a.stdout.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("could not write %s to stdout: %w", target.format.Name, err)
		}

		return nil
	}

	if err := os.WriteFile(target.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("could not write %s: %w", target.path, err)
	}

	return nil
}

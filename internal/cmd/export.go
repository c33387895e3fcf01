package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
	"go.followtheprocess.codes/imgattr/internal/imgattr"
)

const exportLong = `
The file is either a raster image (png, jpeg, gif, bmp, tiff, webp) or a
document manifest (.yaml, .yml, .json, .toml) describing layers, channels,
paths and selections.

The formats to export are taken from, in order:

  - One or more '--format' flags
  - The extension of '--output'
  - The 'format' key in the config file or $IMGATTR_FORMAT
  - An interactive menu, if stdin is a terminal

With no '--output', each format is written next to the input file with the
format's extension. Pass '--output -' to print a single format to stdout.
`

// export returns the export subcommand.
func export() (*cli.Command, error) {
	var (
		options    imgattr.ExportOptions
		configPath string
	)

	return cli.New(
		"export",
		cli.Short("Export the attributes of an image or manifest"),
		cli.Long(exportLong),
		cli.Arg(&options.File, "file", "Path to the image or manifest"),
		cli.Flag(&options.Formats, "format", 'f', "Export format(s), any of (xml|json|yaml)"),
		cli.Flag(&options.Output, "output", 'o', "Output path, '-' for stdout"),
		cli.Flag(&configPath, "config", flag.NoShortHand, "Path to a config file"),
		cli.Flag(&options.NoColor, "no-color", flag.NoShortHand, "Disable coloured output"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			options.DefaultFormat = cfg.Format
			options.NoColor = options.NoColor || !cfg.ColorEnabled()
			options.Debug = options.Debug || cfg.Debug

			app := imgattr.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())

			return app.Export(ctx, options)
		}),
	)
}

// formats returns the formats subcommand.
func formats() (*cli.Command, error) {
	return cli.New(
		"formats",
		cli.Short("List the available export formats"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := imgattr.New(false, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Formats()
		}),
	)
}

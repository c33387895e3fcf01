// Package cmd implements imgattr's CLI.
package cmd

import (
	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/imgattr/internal/config"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Build builds and returns the imgattr CLI.
func Build() (*cli.Command, error) {
	return cli.New(
		"imgattr",
		cli.Short("Export image attributes as XML, JSON or YAML"),
		cli.Version(version),
		cli.Commit(commit),
		cli.BuildDate(date),
		cli.Example("Export the attributes of a PNG next to it as XML", "imgattr export ./photo.png --format xml"),
		cli.Example("Export a document manifest as every format", "imgattr export ./poster.yaml -f xml -f json -f yaml"),
		cli.Example("Print the attributes to stdout", "imgattr export ./photo.png --format json --output -"),
		cli.Example("Pick the formats interactively", "imgattr export ./photo.png"),
		cli.Example("List the available formats", "imgattr formats"),
		cli.SubCommands(export, formats),
	)
}

// loadConfig loads the config file at path, or the default config file if path is empty.
//
// An explicitly requested file must exist, the default one is optional. With no user
// config directory there is no default file, only the environment applies.
func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path, true)
	}

	path, err := config.Path()
	if err != nil {
		return config.Defaults()
	}

	return config.Load(path, false)
}

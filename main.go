package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"studioops/internal/cmd"
	"studioops/version"
)

func main() {
	var cli cmd.CLI

	settings, err := cmd.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load settings: %v\n", err)
	}
	cli.SetSettings(settings)

	ctx := kong.Parse(&cli,
		kong.Name("studioops"),
		kong.Description(version.Tagline),
		kong.UsageOnError(),
		kong.Vars{"version": version.Info()},
	)

	err = ctx.Run(&cli)
	if closeErr := cli.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: cleanup failed: %v\n", closeErr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alecthomas/kong"
	"github.com/arnavsurve/stepshot/cmd/cli"
	"github.com/joho/godotenv"
)

func main() {
	// .env is loaded before parsing so it can supply flag values via env tags.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	var c cli.CLI
	ctx := kong.Parse(&c,
		kong.Name("stepshot"),
		kong.Description("Drive a headless browser through use cases and capture what happened."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&c.Globals)
	ctx.FatalIfErrorf(err)
}

package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/videocatalog/cmd"
	"github.com/lepinkainen/videocatalog/config"
	"github.com/lepinkainen/videocatalog/logging"
	"github.com/lepinkainen/videocatalog/types"
)

var Version = "dev"

type CLI struct {
	Config kong.ConfigFlag `help:"Read default flag values from this TOML file"`

	Scan    cmd.ScanCmd    `cmd:"" help:"Scan videos into the CSV catalogue"`
	Show    cmd.ShowCmd    `cmd:"" help:"Print the catalogue as a table"`
	Version cmd.VersionCmd `cmd:"" help:"Show version information"`
}

func kongOptions(appCtx *types.AppContext, configPaths ...string) []kong.Option {
	return []kong.Option{
		kong.Name("videocatalog"),
		kong.Description("Catalogue a video collection into a CSV file using ffprobe and file name conventions."),
		kong.UsageOnError(),
		kong.Configuration(config.TOML, configPaths...),
		kong.Bind(appCtx),
	}
}

func main() {
	log, _, err := logging.New(logging.Options{Console: os.Stderr})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	appCtx := &types.AppContext{Version: Version, Log: log}

	var cli CLI
	ctx := kong.Parse(&cli, kongOptions(appCtx, config.DefaultPaths()...)...)
	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

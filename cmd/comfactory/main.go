package main

import (
	"github.com/alecthomas/kong"

	"github.com/omkar-bitkraft/comfactory/cmd/comfactory/commands"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("comfactory"),
		kong.Description("Build a static site and launch it onto a public HTTPS domain."),
		kong.UsageOnError(),
	)

	global, err := commands.NewGlobal(cli.EnvFile, cli.Verbose)
	ctx.FatalIfErrorf(err)

	ctx.FatalIfErrorf(ctx.Run(global))
}

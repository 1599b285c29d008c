package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config   string           `short:"c" default:"wordscramble.hcl" env:"WORDSCRAMBLE_CONFIG" help:"Path to HCL configuration file"`
	NoColor  bool             `help:"Disable colored output"`
	LogLevel string           `short:"l" help:"Log level: debug, info, warn, error (overrides config)"`
	Version  kong.VersionFlag `short:"v" help:"Show version"`

	Stdout io.Writer `kong:"-"`
	Stderr io.Writer `kong:"-"`
}

type CLI struct {
	Globals

	Play    PlayCmd    `cmd:"" default:"1" help:"Play a game in the terminal"`
	Serve   ServeCmd   `cmd:"" help:"Host games over websockets"`
	Connect ConnectCmd `cmd:"" help:"Play a game hosted by a remote server"`
	Check   CheckCmd   `cmd:"" help:"Submit words against a root word and print each outcome"`
	Pick    PickCmd    `cmd:"" help:"Print a random root word"`
}

func parserOptions() []kong.Option {
	return []kong.Option{
		kong.Name("wordscramble"),
		kong.Description("Find the words hidden inside a scrambled root word"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	}
}

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	cli := CLI{Globals: Globals{Stdout: os.Stdout, Stderr: os.Stderr}}
	ctx := kong.Parse(&cli, parserOptions()...)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

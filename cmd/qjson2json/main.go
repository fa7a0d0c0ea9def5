package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/hayeah/qjson"
)

// Args defines the command-line arguments with subcommands
type Args struct {
	Convert *ConvertCmd `arg:"subcommand:convert" help:"Convert qjson files to strict JSON"`
	Check   *CheckCmd   `arg:"subcommand:check" help:"Validate qjson files without writing output"`
	Version *VersionCmd `arg:"subcommand:version" help:"Print converter and syntax versions"`

	Config  string `arg:"-c,--config" help:"Path to a qjson2json.toml config file"`
	Verbose bool   `arg:"-v,--verbose" help:"Enable debug logging"`
}

type VersionCmd struct{}

// Runner encapsulates the state and behavior for the CLI
type Runner struct {
	Args   Args
	Config *Config
	Logger *slog.Logger
}

// NewRunner loads the config and initializes a new Runner
func NewRunner(args Args) (*Runner, error) {
	cfg, err := LoadConfig(args.Config)
	if err != nil {
		return nil, err
	}
	level := slog.LevelInfo
	if args.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return &Runner{Args: args, Config: cfg, Logger: logger}, nil
}

// Run dispatches to the appropriate subcommand
func (r *Runner) Run() error {
	switch {
	case r.Args.Convert != nil:
		return NewConvertRunner(*r.Args.Convert, r.Config, r.Logger).Run()
	case r.Args.Check != nil:
		return NewCheckRunner(*r.Args.Check, r.Config).Run()
	case r.Args.Version != nil:
		fmt.Printf("qjson2json v%s syntax: v%s\n", qjson.Version, qjson.SyntaxVersion)
		return nil
	default:
		return fmt.Errorf("no subcommand specified, use 'convert', 'check', or 'version'")
	}
}

// main is our entrypoint: parse args and run the application
func main() {
	var args Args
	parser := arg.MustParse(&args)

	// If no subcommand is specified, show help
	if args.Convert == nil && args.Check == nil && args.Version == nil {
		parser.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	runner, err := NewRunner(args)
	if err != nil {
		log.Fatal(err)
	}
	if err := runner.Run(); err != nil {
		log.Fatal(err)
	}
}

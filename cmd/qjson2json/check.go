package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/hayeah/qjson"
)

// CheckCmd validates qjson files without writing any output files.
type CheckCmd struct {
	Patterns []string `arg:"positional,required" help:"files or doublestar globs to validate"`
	Quiet    bool     `arg:"-q,--quiet" help:"only report failures"`
}

var (
	checkPathStyle = lipgloss.NewStyle().Bold(true)
	checkOkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	checkErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// CheckRunner runs one check invocation.
type CheckRunner struct {
	Cmd    CheckCmd
	Config *Config
}

// NewCheckRunner creates and initializes a CheckRunner
func NewCheckRunner(cmd CheckCmd, cfg *Config) *CheckRunner {
	return &CheckRunner{Cmd: cmd, Config: cfg}
}

// Run reports one line per file and fails if any file does not parse.
func (r *CheckRunner) Run() error {
	paths, err := expandPatterns(r.Cmd.Patterns)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files match %v", r.Cmd.Patterns)
	}

	failed := 0
	for _, path := range paths {
		if err := r.checkFile(path); err != nil {
			failed++
			fmt.Printf("%s: %s\n", checkPathStyle.Render(path), checkErrStyle.Render(err.Error()))
			continue
		}
		if !r.Cmd.Quiet {
			fmt.Printf("%s: %s\n", checkPathStyle.Render(path), checkOkStyle.Render("ok"))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(paths))
	}
	return nil
}

func (r *CheckRunner) checkFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	p := qjson.NewParser(string(data))
	p.SetMaxDepth(r.Config.MaxDepth)
	_, err = p.Parse()
	return err
}

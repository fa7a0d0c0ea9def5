package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hayeah/qjson"
)

// ConvertCmd converts qjson inputs into strict JSON files.
type ConvertCmd struct {
	Patterns []string `arg:"positional" help:"files or doublestar globs; reads stdin when empty"`
	Out      string   `arg:"-o,--out" help:"output file for a single input (default: input with a .json extension)"`
	OutDir   string   `arg:"--out-dir" help:"directory for converted files"`
	MaxDepth int      `arg:"--max-depth" help:"override the nesting limit"`
}

// ConvertRunner runs one convert invocation.
type ConvertRunner struct {
	Cmd    ConvertCmd
	Config *Config
	Logger *slog.Logger
}

// NewConvertRunner creates and initializes a ConvertRunner
func NewConvertRunner(cmd ConvertCmd, cfg *Config, logger *slog.Logger) *ConvertRunner {
	return &ConvertRunner{Cmd: cmd, Config: cfg, Logger: logger}
}

// Run converts stdin or every matched file, stopping at the first failure.
func (r *ConvertRunner) Run() error {
	if len(r.Cmd.Patterns) == 0 {
		return r.convertStdin()
	}
	paths, err := expandPatterns(r.Cmd.Patterns)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files match %v", r.Cmd.Patterns)
	}
	if r.Cmd.Out != "" && len(paths) > 1 {
		return fmt.Errorf("--out needs a single input, got %d files", len(paths))
	}
	for _, path := range paths {
		if err := r.convertFile(path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func (r *ConvertRunner) maxDepth() int {
	if r.Cmd.MaxDepth > 0 {
		return r.Cmd.MaxDepth
	}
	return r.Config.MaxDepth
}

func (r *ConvertRunner) convertText(input string) (string, error) {
	p := qjson.NewParser(input)
	p.SetMaxDepth(r.maxDepth())
	v, err := p.Parse()
	if err != nil {
		return "", err
	}
	return qjson.Serialize(v), nil
}

func (r *ConvertRunner) convertStdin() error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	out, err := r.convertText(string(data))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, out)
	return err
}

func (r *ConvertRunner) convertFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out, err := r.convertText(string(data))
	if err != nil {
		return err
	}
	dest := r.outputPath(path)
	if err := os.WriteFile(dest, []byte(out+"\n"), 0o644); err != nil {
		return err
	}
	r.Logger.Debug("converted", "from", path, "to", dest)
	return nil
}

// outputPath derives the destination for path: --out wins, then the
// out-dir and extension from flags or config.
func (r *ConvertRunner) outputPath(path string) string {
	if r.Cmd.Out != "" {
		return r.Cmd.Out
	}
	ext := r.Config.Ext
	if ext == "" {
		ext = ".json"
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ext
	dir := r.Cmd.OutDir
	if dir == "" {
		dir = r.Config.OutDir
	}
	if dir == "" {
		dir = filepath.Dir(path)
	}
	return filepath.Join(dir, base)
}

// expandPatterns resolves doublestar globs, passing non-glob arguments
// through untouched, and returns a sorted, deduplicated list.
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	for _, pat := range patterns {
		if !strings.ContainsAny(pat, "*?[{") {
			add(pat)
			continue
		}
		matches, err := doublestar.FilepathGlob(pat)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pat, err)
		}
		for _, m := range matches {
			add(m)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

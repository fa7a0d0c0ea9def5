package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// DefaultConfigFile is looked up in the working directory when --config
// is not given.
const DefaultConfigFile = "qjson2json.toml"

// Config holds defaults for the CLI; flags override every field.
type Config struct {
	MaxDepth int    `toml:"max_depth"`
	OutDir   string `toml:"out_dir"`
	Ext      string `toml:"ext"`
}

// LoadConfig reads path, or DefaultConfigFile when path is empty. A
// missing default file yields a zero Config; a missing explicit file is
// an error.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return &cfg, nil
}

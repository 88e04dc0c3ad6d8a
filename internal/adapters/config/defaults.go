// Package config loads runner defaults from an optional ply.toml file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/zerr"
)

// Filename is the defaults file looked up in the working directory and
// the home directory.
const Filename = "ply.toml"

// EnvConfig overrides the defaults file location.
const EnvConfig = "PLY_CONFIG"

// Defaults carries the runner settings a ply.toml can override.
// Command-line flags always win over these.
type Defaults struct {
	// Forks caps how many hosts run a task concurrently.
	Forks int `toml:"forks"`

	// TimeoutSec bounds a single task execution.
	TimeoutSec int `toml:"timeout"`

	// Color is auto, always or never.
	Color string `toml:"color"`

	// RetryDir overrides where .retry files are written. Empty keeps
	// them next to the playbook.
	RetryDir string `toml:"retry_dir"`

	// Inventory is the inventory path used when -i is not given.
	Inventory string `toml:"inventory"`
}

// NewDefaults returns the built-in settings used without a ply.toml.
func NewDefaults() *Defaults {
	return &Defaults{
		Forks:      5,
		TimeoutSec: 0,
		Color:      "auto",
	}
}

// Timeout returns the per-task timeout, zero meaning unbounded.
func (d *Defaults) Timeout() time.Duration {
	return time.Duration(d.TimeoutSec) * time.Second
}

// Load reads defaults from path. An empty path triggers discovery, and
// a missing file is not an error: the built-ins apply.
func Load(path string) (*Defaults, error) {
	explicit := path != ""
	if !explicit {
		path = discover()
		if path == "" {
			return NewDefaults(), nil
		}
	}

	d := NewDefaults()
	if _, err := toml.DecodeFile(path, d); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return NewDefaults(), nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDefaultsParseFailed.Error()), "path", path)
	}
	return d, nil
}

// discover looks for the defaults file in the override env var, the
// working directory and the home directory, in that order.
func discover() string {
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}
	if _, err := os.Stat(Filename); err == nil {
		return Filename
	}
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, "."+Filename)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

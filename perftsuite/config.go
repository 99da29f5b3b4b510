package perftsuite

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config drives a suite run of the perft command.
type Config struct {
	// Suite is the path to the perft reference file.
	Suite string `toml:"suite"`
	// MaxDepth caps the depth verified per case; 0 means every pinned depth.
	MaxDepth int `toml:"max_depth"`
	// Divide prints per-root-move node counts on mismatch.
	Divide bool `toml:"divide"`
	// Validate turns on the full invariant sweep after every mutation.
	Validate bool `toml:"validate"`
}

// ErrInvalidConfig marks a config file that parsed but cannot drive a run.
var ErrInvalidConfig = errors.New("invalid perft config")

// LoadConfig reads and validates a TOML runner config.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Suite == "" {
		return Config{}, fmt.Errorf("%w: missing suite path", ErrInvalidConfig)
	}
	if cfg.MaxDepth < 0 {
		return Config{}, fmt.Errorf("%w: negative max_depth", ErrInvalidConfig)
	}
	return cfg, nil
}

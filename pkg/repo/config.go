package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"
)

// Config stores repository-local settings from .wit/config.toml.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Commit  CommitConfig  `toml:"commit"`
	Archive ArchiveConfig `toml:"archive"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// CommitConfig controls signing of new commits. SigningKey is a path to
// an SSH private key; a leading ~/ is expanded by the CLI.
type CommitConfig struct {
	Sign       bool   `toml:"sign"`
	SigningKey string `toml:"signing_key"`
}

type ArchiveConfig struct {
	Level string `toml:"level"` // fastest, default, better or best
}

// DefaultConfig returns the settings written by Init.
func DefaultConfig() *Config {
	return &Config{
		Log:     LogConfig{Level: zerolog.InfoLevel.String()},
		Archive: ArchiveConfig{Level: zstd.SpeedDefault.String()},
	}
}

// Validate rejects unknown log and archive levels.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	if c.Archive.Level != "" {
		if ok, _ := zstd.EncoderLevelFromString(c.Archive.Level); !ok {
			return fmt.Errorf("config: archive.level: unknown level %q", c.Archive.Level)
		}
	}
	return nil
}

// ArchiveLevel returns the zstd level for Archive.
func (c *Config) ArchiveLevel() zstd.EncoderLevel {
	_, level := zstd.EncoderLevelFromString(c.Archive.Level)
	return level
}

func (r *Repo) configPath() string {
	return filepath.Join(r.WitDir, configFile)
}

// ReadConfig reads .wit/config.toml. A missing file yields DefaultConfig;
// keys that are present override the defaults and unknown keys are an
// error.
func (r *Repo) ReadConfig() (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(r.configPath(), cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("read config: unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}

// WriteConfig atomically writes .wit/config.toml.
func (r *Repo) WriteConfig(cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	tmp, err := os.CreateTemp(r.WitDir, ".config-tmp-*")
	if err != nil {
		return fmt.Errorf("write config: tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write config: encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: close: %w", err)
	}
	if err := os.Rename(tmpName, r.configPath()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: rename: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"

	"base94/basen"
	"base94/internal/cache"
	"base94/internal/ctxlog"
)

const (
	configEnv         = "BASE94_CONFIG"
	defaultConfigFile = "base94.yaml"
)

type Config struct {
	Log   ctxlog.Config `yaml:"log"`
	Codec CodecConfig   `yaml:"codec"`
	Cache cache.Config  `yaml:"cache"`
	Batch BatchConfig   `yaml:"batch"`
}

type CodecConfig struct {
	Base    int    `yaml:"base"`
	Symbols string `yaml:"alphabet"`
}

type BatchConfig struct {
	Jobs int `yaml:"jobs"`
}

func DefaultConfig() Config {
	return Config{
		Codec: CodecConfig{
			Base: basen.MaxBase,
		},
	}
}

// Alphabet returns the configured alphabet, or the default one.
func (c CodecConfig) Alphabet() (*basen.Alphabet, error) {
	if c.Symbols == "" {
		return basen.Default, nil
	}
	return basen.NewAlphabet(c.Symbols)
}

// LoadConfig reads filename, or the file named by $BASE94_CONFIG, or
// base94.yaml in the working directory. Only that last one may be missing,
// in which case the defaults are used.
func LoadConfig(ctx context.Context, filename string) (Config, error) {
	config := DefaultConfig()

	explicit := true
	if filename == "" {
		filename = os.Getenv(configEnv)
	}
	if filename == "" {
		filename = defaultConfigFile
		explicit = false
	}

	file, err := os.Open(filename)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return Config{}, fmt.Errorf("open %q: %w", filename, err)
	}
	defer ctxlog.Close(ctx, "config file", file)

	dec := yaml.NewDecoder(file, yaml.Strict())

	err = dec.Decode(&config)
	if errors.Is(err, io.EOF) {
		// An empty document zeroes the target.
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("yaml: %w", err)
	}

	return config, nil
}

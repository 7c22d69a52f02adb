// Package configs loads the settings of the paillier command from an
// optional TOML file:
//
//	bits = 512
//	log_level = "warn"
//	log_format = "text"
package configs

import (
	"github.com/mr-shifu/paillier-lib/core/params"
	"github.com/mr-shifu/paillier-lib/pkg/logging"
	"github.com/pkg/errors"
)

var (
	ErrInvalidBits = errors.New("configs: bits is below the minimum safe prime size")
)

type Config struct {
	// Bits is the bit length of each safe prime generated by keygen.
	Bits      int    `toml:"bits"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Bits:      params.BitsSafePrime,
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// Load reads the file at path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if err := LoadTOML(path, cfg); err != nil {
		return nil, errors.WithMessage(err, "configs: failed to load "+path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path.
func (c *Config) Save(path string) error {
	return SaveTOML(path, c)
}

func (c *Config) Validate() error {
	if c.Bits < params.MinBitsSafePrime {
		return errors.WithMessagef(ErrInvalidBits, "bits = %d, minimum %d", c.Bits, params.MinBitsSafePrime)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return errors.WithMessagef(logging.ErrUnknownFormat, "%q", c.LogFormat)
	}
	return nil
}

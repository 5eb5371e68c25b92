// Package config holds the mbedec settings, read from a .env file and the
// environment and overridden by flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/blues/mbe"
)

// Environment variable names.
const (
	EnvCodec      = "MBE_CODEC"
	EnvGain       = "MBE_GAIN"
	EnvOutputRate = "MBE_OUTPUT_RATE"
	EnvHex        = "MBE_HEX"
	EnvLogLevel   = "LOG_LEVEL"

	DefaultEnvFile = ".env"
)

// OutputRates lists the supported PCM output rates in Hz.
var OutputRates = []int{8000, 16000, 22050, 44100, 48000}

// Config is the decoder tool configuration.
type Config struct {
	Codec      string  // "ambe" or "imbe"; empty means use the file header.
	Gain       float64 // Output gain.
	OutputRate int     // Output sample rate in Hz.
	Hex        bool    // Input is hex text, one frame per line.
	LogLevel   string
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Gain:       mbe.DefaultGain,
		OutputRate: mbe.SampleRate,
		LogLevel:   "info",
	}
}

// Load reads envFile if it exists, then the environment, on top of Default.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := LoadEnv(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	cfg := Default()
	if v := os.Getenv(EnvCodec); v != "" {
		cfg.Codec = strings.ToLower(v)
	}
	if v := os.Getenv(EnvGain); v != "" {
		g, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvGain, err)
		}
		cfg.Gain = g
	}
	if v := os.Getenv(EnvOutputRate); v != "" {
		r, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvOutputRate, err)
		}
		cfg.OutputRate = r
	}
	if v := os.Getenv(EnvHex); v != "" {
		h, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvHex, err)
		}
		cfg.Hex = h
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	return cfg, nil
}

// Validate checks the settings without touching the filesystem.
func (c Config) Validate() error {
	if c.Codec != "" {
		if _, err := mbe.ParseCodec(c.Codec); err != nil {
			return err
		}
	}
	if !(c.Gain > 0 && c.Gain < mbe.MaxGain) {
		return fmt.Errorf("%w: %g", mbe.ErrInvalidGain, c.Gain)
	}
	for _, r := range OutputRates {
		if r == c.OutputRate {
			return nil
		}
	}
	return fmt.Errorf("config: unsupported output rate %d", c.OutputRate)
}

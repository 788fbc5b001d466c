package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/tagframe/internal/logging"
	"github.com/danmuck/tagframe/internal/protocol/frame"
	"github.com/danmuck/tagframe/internal/protocol/tag"
)

// Config drives the tagframe CLI.
type Config struct {
	LogLevel string
	Decode   DecodeConfig
	Encode   EncodeConfig
}

type DecodeConfig struct {
	StrictLength    bool
	SkipUnsupported bool
}

// EncodeConfig lists the flags forced on every rewritten frame.
type EncodeConfig struct {
	Compression         bool
	DataLengthIndicator bool
	Unsynchronization   bool
	Padding             int
}

type fileConfig struct {
	LogLevel string `toml:"log_level"`
	Decode   struct {
		StrictLength    bool `toml:"strict_length"`
		SkipUnsupported bool `toml:"skip_unsupported"`
	} `toml:"decode"`
	Encode struct {
		Compression         bool `toml:"compression"`
		DataLengthIndicator bool `toml:"data_length_indicator"`
		Unsynchronization   bool `toml:"unsynchronization"`
		Padding             int  `toml:"padding"`
	} `toml:"encode"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Decode:   DecodeConfig{SkipUnsupported: true},
		Encode:   EncodeConfig{Padding: 1024},
	}
}

// Load reads path on top of Default. Keys absent from the file keep their
// default value.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load tagframe config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config key: %s", undecoded[0])
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("decode", "strict_length") {
		cfg.Decode.StrictLength = raw.Decode.StrictLength
	}
	if meta.IsDefined("decode", "skip_unsupported") {
		cfg.Decode.SkipUnsupported = raw.Decode.SkipUnsupported
	}
	if meta.IsDefined("encode", "compression") {
		cfg.Encode.Compression = raw.Encode.Compression
	}
	if meta.IsDefined("encode", "data_length_indicator") {
		cfg.Encode.DataLengthIndicator = raw.Encode.DataLengthIndicator
	}
	if meta.IsDefined("encode", "unsynchronization") {
		cfg.Encode.Unsynchronization = raw.Encode.Unsynchronization
	}
	if meta.IsDefined("encode", "padding") {
		cfg.Encode.Padding = raw.Encode.Padding
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("config log_level invalid: %q", cfg.LogLevel)
	}
	if cfg.Encode.Padding < 0 {
		return fmt.Errorf("config encode.padding must be >= 0, got %d", cfg.Encode.Padding)
	}
	return nil
}

// Codec builds the frame codec the decode settings describe.
func (c Config) Codec() *frame.V4 {
	return &frame.V4{StrictLength: c.Decode.StrictLength}
}

// ReadOptions returns the tag walk options.
func (c Config) ReadOptions() tag.Options {
	return tag.Options{SkipUnsupported: c.Decode.SkipUnsupported}
}

// Apply sets the configured encode flags on f. Flags that are off in the
// config are left as decoded.
func (e EncodeConfig) Apply(f *frame.Frame) {
	if e.Compression {
		f.Flags.Compression = true
	}
	if e.DataLengthIndicator {
		f.Flags.DataLengthIndicator = true
	}
	if e.Unsynchronization {
		f.Flags.Unsynchronization = true
	}
}

package config

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/tsellick/keytrace/internal/analogsdk"
)

// Load builds a Config by layering defaults, an optional YAML file,
// and environment variables.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if KEYTRACE_CONFIG is set
//  3. env (prefix KEYTRACE_)
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("KEYTRACE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// KEYTRACE_TICK_INTERVAL_MS -> tick_interval_ms, matching the
	// koanf tags on the struct.
	envProvider := env.Provider("KEYTRACE_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "keytrace_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch {
	case cfg.LibraryPath == "":
		return fmt.Errorf("%w: library_path must not be empty", ErrInvalidConfig)
	case cfg.FilePrefix == "":
		return fmt.Errorf("%w: file_prefix must not be empty", ErrInvalidConfig)
	case cfg.TickIntervalMS <= 0:
		return fmt.Errorf("%w: tick_interval_ms must be positive", ErrInvalidConfig)
	case cfg.BufferSize <= 0:
		return fmt.Errorf("%w: buffer_size must be positive", ErrInvalidConfig)
	case cfg.KeycodeMode < 0 || cfg.KeycodeMode > int(analogsdk.KeycodeVirtualKeyTranslate):
		return fmt.Errorf("%w: keycode_mode %d out of range", ErrInvalidConfig, cfg.KeycodeMode)
	case cfg.StartKey == cfg.StopKey:
		return fmt.Errorf("%w: start_key and stop_key must differ", ErrInvalidConfig)
	}
	for _, key := range append([]int{cfg.StartKey, cfg.StopKey}, cfg.ExcludedKeys...) {
		if key < 0 || key > math.MaxUint16 {
			return fmt.Errorf("%w: scan code %d out of range", ErrInvalidConfig, key)
		}
	}
	for _, key := range cfg.ExcludedKeys {
		if key == cfg.StartKey || key == cfg.StopKey {
			return fmt.Errorf("%w: excluded key %d is the start or stop key", ErrInvalidConfig, key)
		}
	}
	return nil
}

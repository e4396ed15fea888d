// Package config defines process configuration and its loading order.
package config

import (
	"github.com/tsellick/keytrace/internal/analogsdk"
	"github.com/tsellick/keytrace/internal/reading"
)

// Config holds everything the recorder needs for one session.
type Config struct {
	// LogLevel controls slog verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LibraryPath locates the SDK wrapper dynamic library. Defaults to
	// the platform library name, resolved through the loader's normal
	// search path.
	LibraryPath string `koanf:"library_path"`

	// OutputDir is where session log files are created.
	OutputDir string `koanf:"output_dir"`

	// FilePrefix starts every session log file name.
	FilePrefix string `koanf:"file_prefix"`

	// TickIntervalMS is the sampling cadence in milliseconds.
	TickIntervalMS int `koanf:"tick_interval_ms"`

	// BufferSize bounds how many key states one poll can return.
	BufferSize int `koanf:"buffer_size"`

	// KeycodeMode selects the scan-code namespace the SDK reports in:
	// 0 HID, 1 scan code set 1, 2 virtual key, 3 translated virtual key.
	KeycodeMode int `koanf:"keycode_mode"`

	// StartKey and StopKey are the scan codes that begin and end a
	// recording.
	StartKey int `koanf:"start_key"`
	StopKey  int `koanf:"stop_key"`

	// ExcludedKeys are scan codes stripped from every poll result.
	ExcludedKeys []int `koanf:"excluded_keys"`
}

// New returns a Config with defaults. Space starts a recording, Esc
// stops it, matching the console prompt.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LibraryPath:    analogsdk.DefaultLibraryName(),
		OutputDir:      ".",
		FilePrefix:     "keytrace_",
		TickIntervalMS: 1,
		BufferSize:     analogsdk.DefaultBufferSize,
		StartKey:       int(reading.ScanCodeSpace),
		StopKey:        int(reading.ScanCodeEsc),
	}
}

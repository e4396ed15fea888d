package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/tsellick/keytrace/internal/config"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"KEYTRACE_CONFIG",
		"KEYTRACE_LOG_LEVEL",
		"KEYTRACE_LIBRARY_PATH",
		"KEYTRACE_OUTPUT_DIR",
		"KEYTRACE_FILE_PREFIX",
		"KEYTRACE_TICK_INTERVAL_MS",
		"KEYTRACE_BUFFER_SIZE",
		"KEYTRACE_KEYCODE_MODE",
		"KEYTRACE_START_KEY",
		"KEYTRACE_STOP_KEY",
	} {
		_ = os.Unsetenv(key)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.FilePrefix, convey.ShouldEqual, "keytrace_")
				convey.So(cfg.OutputDir, convey.ShouldEqual, ".")
				convey.So(cfg.TickIntervalMS, convey.ShouldEqual, 1)
				convey.So(cfg.BufferSize, convey.ShouldEqual, 64)
				convey.So(cfg.StartKey, convey.ShouldEqual, 44)
				convey.So(cfg.StopKey, convey.ShouldEqual, 41)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnvVars()
			_ = os.Setenv("KEYTRACE_FILE_PREFIX", "lab_")
			_ = os.Setenv("KEYTRACE_TICK_INTERVAL_MS", "5")
			_ = os.Setenv("KEYTRACE_BUFFER_SIZE", "32")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.FilePrefix, convey.ShouldEqual, "lab_")
				convey.So(cfg.TickIntervalMS, convey.ShouldEqual, 5)
				convey.So(cfg.BufferSize, convey.ShouldEqual, 32)
				convey.So(cfg.StartKey, convey.ShouldEqual, 44)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			clearConfigEnvVars()
			yamlContent := `
output_dir: /tmp/captures
file_prefix: bench_
tick_interval_ms: 2
excluded_keys: [57, 58]
`
			tmpFile := filepath.Join(t.TempDir(), "keytrace.yaml")
			convey.So(os.WriteFile(tmpFile, []byte(yamlContent), 0o644), convey.ShouldBeNil)
			_ = os.Setenv("KEYTRACE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.OutputDir, convey.ShouldEqual, "/tmp/captures")
				convey.So(cfg.FilePrefix, convey.ShouldEqual, "bench_")
				convey.So(cfg.TickIntervalMS, convey.ShouldEqual, 2)
				convey.So(cfg.ExcludedKeys, convey.ShouldResemble, []int{57, 58})
			})

			convey.Convey("And env still wins over the file", func() {
				_ = os.Setenv("KEYTRACE_FILE_PREFIX", "env_")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.FilePrefix, convey.ShouldEqual, "env_")
			})
		})

		convey.Convey("When the config is invalid", func() {
			clearConfigEnvVars()

			convey.Convey("Then a zero tick interval is rejected", func() {
				_ = os.Setenv("KEYTRACE_TICK_INTERVAL_MS", "0")
				defer clearConfigEnvVars()
				_, err := config.Load(ctx)
				convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
			})

			convey.Convey("Then identical start and stop keys are rejected", func() {
				_ = os.Setenv("KEYTRACE_START_KEY", "41")
				defer clearConfigEnvVars()
				_, err := config.Load(ctx)
				convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
			})

			convey.Convey("Then an unknown keycode mode is rejected", func() {
				_ = os.Setenv("KEYTRACE_KEYCODE_MODE", "4")
				defer clearConfigEnvVars()
				_, err := config.Load(ctx)
				convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
			})

			convey.Convey("Then an out-of-range scan code is rejected", func() {
				_ = os.Setenv("KEYTRACE_START_KEY", "70000")
				defer clearConfigEnvVars()
				_, err := config.Load(ctx)
				convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
			})

			convey.Convey("Then a missing config file is reported", func() {
				_ = os.Setenv("KEYTRACE_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
				defer clearConfigEnvVars()
				_, err := config.Load(ctx)
				convey.So(err, convey.ShouldWrap, config.ErrLoadConfig)
			})
		})
	})
}

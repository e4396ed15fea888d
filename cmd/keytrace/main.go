package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tsellick/keytrace/internal/analogsdk"
	"github.com/tsellick/keytrace/internal/config"
	"github.com/tsellick/keytrace/internal/hidprobe"
	"github.com/tsellick/keytrace/internal/session"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM, syscall.SIGINT,
	)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "keytrace:", err)
		return 1
	}
	setLogLevel(cfg.LogLevel)

	excluded := make([]uint16, 0, len(cfg.ExcludedKeys))
	for _, k := range cfg.ExcludedKeys {
		excluded = append(excluded, uint16(k))
	}

	sdk, err := analogsdk.Open(cfg.LibraryPath,
		analogsdk.WithBufferSize(cfg.BufferSize),
		analogsdk.WithKeycodeMode(analogsdk.KeycodeMode(cfg.KeycodeMode)),
		analogsdk.WithExcludedKeys(excluded...),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "keytrace:", err)
		return 1
	}
	// The session shuts the SDK down itself; this covers the paths
	// where it never gets that far. Shutdown is idempotent.
	defer sdk.Shutdown()

	sess := &session.Session{
		SDK:       sdk,
		Finder:    hidprobe.New(),
		Dir:       cfg.OutputDir,
		Prefix:    cfg.FilePrefix,
		Tick:      time.Duration(cfg.TickIntervalMS) * time.Millisecond,
		StartCode: uint16(cfg.StartKey),
		StopCode:  uint16(cfg.StopKey),
	}
	if err := sess.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "keytrace:", err)
		return 1
	}
	return 0
}

func setLogLevel(level string) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

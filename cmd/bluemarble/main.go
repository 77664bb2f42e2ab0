// Command bluemarble renders a textured, lit globe that can be
// flown around with W/A/S/D and the mouse (hold the left button).
//
// Settings are read from bluemarble.toml in the working directory,
// or from the TOML or YAML file named by $BLUEMARBLE_CONFIG.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/paperboard/bluemarble/internal/app"
)

func init() {
	// glfw must be on main thread
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	path, explicit := app.ConfigPath()
	cfg, err := app.LoadConfig(path, explicit)
	if err != nil {
		logger.Error("failed to load config", "path", path, "err", err)
		return 1
	}

	level, _ := app.ParseLevel(cfg.LogLevel)
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	a, err := app.Open(cfg, logger)
	if err != nil {
		logger.Error("failed to start", "err", err)
		return 1
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// run gameloop
	a.Run(ctx)
	return 0
}

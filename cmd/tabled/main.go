package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardhouse/dealerschoice/internal/randutil"
	"github.com/cardhouse/dealerschoice/internal/server"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Serve   ServeCmd         `cmd:"" default:"1" help:"Run the table server"`
	Check   CheckCmd         `cmd:"" help:"Validate a configuration file"`
}

// ServeCmd runs the dealer's choice table host
type ServeCmd struct {
	Config string `kong:"default='tabled.hcl',help='Path to HCL configuration file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed (optional)'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}

	logger := setupLogger(c.Debug, cfg.Server.LogLevel)

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	} else if cfg.Server.Seed != 0 {
		seed = cfg.Server.Seed
	}
	rng := randutil.New(seed)
	logger.Info("starting", "version", version, "seed", seed, "tables", len(cfg.Tables))

	srv, err := server.New(cfg, rng, quartz.NewReal(), logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx)
}

// CheckCmd parses and validates a config file without starting anything
type CheckCmd struct {
	Config string `kong:"default='tabled.hcl',help='Path to HCL configuration file'"`
}

func (c *CheckCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	fmt.Printf("ok: %d table(s)\n", len(cfg.Tables))
	for _, t := range cfg.Tables {
		fmt.Printf("  %s: %s, %d seats\n", t.Name, t.Game, t.Seats)
	}
	return nil
}

func setupLogger(debug bool, level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
		return logger
	}
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("tabled"),
		kong.Description("Multi-variant poker table server"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

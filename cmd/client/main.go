package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"PartnerApp/internal/cli/commands"
	"PartnerApp/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Load unified config (env + flags)
	cfg := config.NewConfig()
	if cfg.AppVersion == "" || cfg.AppVersion == "dev" {
		cfg.AppVersion = version
	}

	if cfg.Version {
		printVersion(cfg)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// dispatcher
	exitCode := commands.Dispatch(ctx, cfg, flag.Args())
	if exitCode == 0 {
		return
	}
	os.Exit(exitCode)
}

func printVersion(cfg *config.Config) {
	fmt.Printf("PartnerApp CLI\nVersion: %s\nBuild: %s\nBuild date: %s\n", cfg.AppVersion, cfg.BuildNumber, buildDate)
}

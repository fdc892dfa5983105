package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mercatohq/marketd/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

var Version string

// envReplacer replaces `-` to `_`.
// This is used to map flags like `--db-type` to env vars like `MARKETD_DB_TYPE`.
var envReplacer = strings.NewReplacer("-", "_")

func init() {
	viper.SetEnvPrefix("MARKETD")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(envReplacer)
}

func main() {
	app := cli.NewApp()
	app.Version = Version
	app.Name = "marketd"
	app.Usage = "marketplace ledger daemon"
	app.Flags = config.Flags
	app.Action = runDaemon

	if err := app.Run(os.Args); err != nil {
		fmt.Println(fmt.Errorf("error: %v", err))
		os.Exit(1)
	}
}

func runDaemon(ctx *cli.Context) error {
	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		return fmt.Errorf("invalid config: %s", err)
	}

	log.SetLevel(log.Level(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("failed to start service: %s", err)
	}

	log.Infof("marketd config: %+v", cfg)
	log.Info("service started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(
		sigChan, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGHUP, os.Interrupt,
	)
	<-sigChan

	log.Info("shutting down service...")
	cfg.MarketService().Stop()
	log.Exit(0)
	return nil
}

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/serframe/internal/bridge"
	"github.com/danmuck/serframe/internal/config"
	"github.com/danmuck/serframe/internal/observability"
	"github.com/danmuck/serframe/link"
)

func main() {
	observability.InitLogger("serframectl")
	configPath := flag.String("config", "cmd/serframectl/config.toml", "path to bridge config")
	flag.Parse()

	cfg, err := config.LoadBridgeConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load bridge config")
	}
	log.Info().Str("path", *configPath).Msg("loaded bridge config")

	var lnk link.Link
	switch cfg.Endpoint {
	case "serial":
		lnk, err = link.OpenSerial(cfg.Device, cfg.Baud, cfg.QueueSize, log.Logger)
	case "tcp":
		lnk, err = link.DialTCP(cfg.Addr, cfg.QueueSize, log.Logger)
	}
	if err != nil {
		log.Fatal().Err(err).Str("endpoint", cfg.Endpoint).Msg("failed to open link")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := bridge.New(cfg, lnk)
	log.Info().
		Str("name", cfg.Name).
		Str("endpoint", lnk.Describe()).
		Str("status_addr", cfg.StatusAddr).
		Msg("bridge started")
	if err := b.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("bridge stopped")
	}
}

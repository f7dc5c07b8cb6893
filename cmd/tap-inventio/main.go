package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/nordicdata/tap-inventio/pkg/config"
	"github.com/nordicdata/tap-inventio/pkg/core"
	"github.com/nordicdata/tap-inventio/pkg/logging"
	"github.com/nordicdata/tap-inventio/pkg/sink"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to tap config")
	discover := flag.Bool("discover", false, "print the stream catalogue and exit")
	pretty := flag.Bool("pretty", false, "human readable log output")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	// a .env file is optional
	_ = godotenv.Load()

	logger := logging.Setup(logging.Config{Level: *logLevel, Pretty: *pretty})

	loader := config.NewDefaultLoader()
	cfg, err := loader.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Str("config", *configPath).Msg("failed to load config")
	}

	if *discover {
		entries, err := core.Discover(cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("discovery failed")
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]interface{}{"streams": entries}); err != nil {
			logger.Fatal().Err(err).Msg("failed to write catalogue")
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, err := openSink(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open sink")
	}
	defer out.Close()

	connector := core.NewConnector(cfg, out)
	summary, err := connector.Sync(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("sync failed")
	}

	logger.Info().
		Str("run_id", summary.RunID).
		Int("streams", summary.Streams).
		Int("records", summary.Records).
		Msg("sync finished")
}

func openSink(cfg *config.Config) (sink.Sink, error) {
	switch cfg.Destination.Type {
	case config.DestinationSQLite:
		return sink.OpenSQLite(cfg.Destination.Path)
	case config.DestinationSinger:
		return sink.NewSingerWriter(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unsupported destination type: %s", cfg.Destination.Type)
	}
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/apparel-insights/inventory-sim/internal/cache"
	"github.com/apparel-insights/inventory-sim/internal/config"
	"github.com/apparel-insights/inventory-sim/internal/dataset"
	"github.com/apparel-insights/inventory-sim/internal/params"
	"github.com/apparel-insights/inventory-sim/internal/service"
	"github.com/apparel-insights/inventory-sim/internal/storage"
	"github.com/apparel-insights/inventory-sim/pkg/logger"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "simcli",
		Usage: "Run inventory simulations and manage brand data files",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a simulation without the server and write the response JSON",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "days",
						Usage: "Simulation length in days",
						Value: 365,
					},
					&cli.IntFlag{
						Name:  "start-day",
						Usage: "0-indexed day-of-year offset for the start date",
						Value: 0,
					},
					&cli.IntFlag{
						Name:  "end-day",
						Usage: "Optional inclusive end day-of-year; overrides --days",
						Value: -1,
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "Path for the response JSON",
						Value: "./simulation.json",
					},
				},
				Action: runSimulation,
			},
			{
				Name:  "fetch",
				Usage: "Download brand CSV drops from object storage into the data dir",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "prefix",
						Usage:   "Object key prefix to list",
						EnvVars: []string{"STORAGE_PREFIX"},
					},
					&cli.StringFlag{
						Name:    "download-dir",
						Usage:   "Destination directory for downloaded files",
						Value:   "./data",
						EnvVars: []string{"STORAGE_DOWNLOAD_DIR"},
					},
				},
				Action: fetchData,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runSimulation(c *cli.Context) error {
	cfg := config.Load()
	logger.SetLevel(cfg.Server.Mode)

	store := dataset.Load(cfg.Brands)
	brandParams := params.Estimate(store)
	svc := service.NewSimulationService(store, brandParams, nil)

	days := c.Int("days")
	startDay := c.Int("start-day")
	req := &service.Request{
		SimulationDays: &days,
		StartDay:       &startDay,
	}
	if endDay := c.Int("end-day"); endDay >= 0 {
		req.EndDay = &endDay
	}

	resp, err := svc.Run(c.Context, req)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	payload, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}

	output := c.String("output")
	if err := os.WriteFile(output, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	logger.Log.Info().
		Str("output", output).
		Int("daily_records", len(resp.DailyData)).
		Msg("simulation written")
	return nil
}

func fetchData(c *cli.Context) error {
	cfg := config.Load()
	logger.SetLevel(cfg.Server.Mode)

	client, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return err
	}

	simCache, err := cache.NewSimulationCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("simulation cache unavailable, stale cached responses may persist")
		simCache = cache.NewNoopSimulationCache()
	}

	prefix := c.String("prefix")
	if prefix == "" {
		prefix = cfg.Storage.Prefix
	}
	downloadDir := c.String("download-dir")
	if err := os.MkdirAll(downloadDir, 0o755); err != nil {
		return fmt.Errorf("failed to ensure download dir %s: %w", downloadDir, err)
	}

	downloaded, err := fetchObjects(c.Context, client, simCache, prefix, downloadDir)
	if err != nil {
		return err
	}

	if downloaded == 0 {
		logger.Log.Warn().Str("prefix", prefix).Msg("no CSV objects found")
	}
	logger.Log.Info().Int("files", downloaded).Msg("fetch completed")
	return nil
}

// fetchObjects downloads every CSV object under prefix into downloadDir.
// When at least one file landed, cached simulation responses are invalidated
// so the next run reflects the refreshed data.
func fetchObjects(ctx context.Context, client storage.ObjectStorage, simCache cache.SimulationCache, prefix, downloadDir string) (int, error) {
	objects, err := client.ListObjects(ctx, prefix)
	if err != nil {
		return 0, fmt.Errorf("failed to list objects for prefix %q: %w", prefix, err)
	}

	downloaded := 0
	for _, obj := range objects {
		if !strings.HasSuffix(strings.ToLower(obj.Key), ".csv") {
			continue
		}
		dest := filepath.Join(downloadDir, filepath.Base(obj.Key))
		if err := client.DownloadObject(ctx, obj.Key, dest); err != nil {
			return downloaded, fmt.Errorf("failed to download %s: %w", obj.Key, err)
		}
		logger.Log.Info().Str("key", obj.Key).Str("dest", dest).Msg("downloaded")
		downloaded++
	}

	if downloaded > 0 {
		if err := simCache.InvalidateAll(ctx); err != nil {
			logger.Log.Warn().Err(err).Msg("failed to invalidate cached simulation responses")
		} else {
			logger.Log.Info().Msg("cached simulation responses invalidated")
		}
	}

	return downloaded, nil
}

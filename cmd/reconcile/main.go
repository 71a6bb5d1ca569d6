// Command reconcile runs batch maintenance over the venue database: station
// link and distance refreshes, and duplicate reconciliation between curated
// listings and directory outlets.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"makanmap.sg/internal/appconf"
	"makanmap.sg/internal/assign"
	"makanmap.sg/internal/clock"
	"makanmap.sg/internal/logging"
	"makanmap.sg/internal/reconcile"
	"makanmap.sg/internal/routing"
	"makanmap.sg/venuedb"
)

func main() {
	_ = godotenv.Load()

	var dataPath string
	var stationID string
	var envFlag string
	var routingURL string
	var refresh bool
	var verbose bool

	flag.StringVar(&dataPath, "data-path", "./makanmap.db", "Path to the SQLite database containing venue data")
	flag.StringVar(&stationID, "station", "", "Reconcile a single station; empty runs every station")
	flag.StringVar(&envFlag, "env", "development", "Environment (development|test|production)")
	flag.StringVar(&routingURL, "routing-url", os.Getenv("MAKANMAP_ROUTING_URL"), "Optional walking-route provider base URL")
	flag.BoolVar(&refresh, "refresh", false, "Refresh station links and walking distances before reconciling")
	flag.BoolVar(&verbose, "verbose", false, "Dump per-action rows and table counts")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewStructuredLogger(os.Stdout, level)

	if err := run(dataPath, stationID, envFlag, routingURL, refresh, verbose, logger); err != nil {
		logger.Error("reconcile failed", "error", err)
		os.Exit(1)
	}
}

func run(dataPath, stationID, envFlag, routingURL string, refresh, verbose bool, logger *slog.Logger) error {
	engine := appconf.DefaultEngine()
	engine.RoutingBaseURL = routingURL

	client, err := venuedb.NewClient(venuedb.NewConfig(dataPath, appconf.EnvFlagToEnvironment(envFlag), verbose))
	if err != nil {
		return fmt.Errorf("failed to open venue database: %w", err)
	}
	defer logging.SafeCloseWithLogging(client, logger, "venue database")

	ctx := context.Background()

	if refresh {
		refresher := assign.NewRefresher(client.Queries, routing.NewClient(engine), engine, logger)

		listingStats, err := refresher.RefreshListings(ctx)
		if err != nil {
			return fmt.Errorf("listing refresh failed: %w", err)
		}
		logger.Info("listings refreshed",
			"examined", listingStats.Examined,
			"updated", listingStats.Updated,
			"reassigned", listingStats.Reassigned,
			"fallbacks", listingStats.Fallbacks)

		mallStats, err := refresher.RefreshMalls(ctx)
		if err != nil {
			return fmt.Errorf("mall refresh failed: %w", err)
		}
		logger.Info("malls refreshed",
			"examined", mallStats.Examined,
			"updated", mallStats.Updated,
			"reassigned", mallStats.Reassigned,
			"fallbacks", mallStats.Fallbacks)
	}

	service := reconcile.NewService(client.Queries, engine, clock.SystemClock{}, logger)

	if stationID != "" {
		report, err := service.ReconcileStation(ctx, stationID)
		if err != nil {
			return err
		}
		logger.Info("station reconciled",
			"station_id", report.StationID,
			"compared", report.Compared,
			"retired", report.Retired,
			"flagged", report.Flagged)

		if verbose {
			dumpActions(ctx, client, stationID, logger)
		}
	} else {
		batch, err := service.ReconcileAll(ctx)
		if err != nil {
			return err
		}
		logger.Info("all stations reconciled",
			"stations", len(batch.Stations),
			"retired", batch.Retired,
			"flagged", batch.Flagged)
	}

	if verbose {
		counts, err := client.TableCounts()
		if err != nil {
			return err
		}
		for table, count := range counts {
			logger.Debug("table count", "table", table, "rows", count)
		}
	}

	return nil
}

func dumpActions(ctx context.Context, client *venuedb.Client, stationID string, logger *slog.Logger) {
	actions, err := client.Queries.ListReconcileActionsForStation(ctx, stationID)
	if err != nil {
		logger.Warn("could not list actions", "error", err)
		return
	}
	for _, action := range actions {
		fmt.Print(venuedb.DumpRow(action))
	}
}

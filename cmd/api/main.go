package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"makanmap.sg/internal/appconf"
)

func main() {
	// Load .env if present; flags and real env still win.
	_ = godotenv.Load()

	var cfg appconf.Config
	var apiKeysFlag string
	var envFlag string
	var configPath string

	// Parse command-line flags
	flag.IntVar(&cfg.Port, "port", 4000, "API server port")
	flag.StringVar(&envFlag, "env", envOrDefault("MAKANMAP_ENV", "development"), "Environment (development|test|production)")
	flag.StringVar(&apiKeysFlag, "api-keys", envOrDefault("MAKANMAP_API_KEYS", "test"), "Comma Separated API Keys (test, etc)")
	flag.IntVar(&cfg.RateLimit, "rate-limit", 100, "Requests per second per API key for rate limiting")
	flag.StringVar(&cfg.DataPath, "data-path", envOrDefault("MAKANMAP_DATA_PATH", "./makanmap.db"), "Path to the SQLite database containing venue data")
	flag.StringVar(&configPath, "config", "", "Optional JSON config file; flags are ignored when set")
	routingURL := flag.String("routing-url", os.Getenv("MAKANMAP_ROUTING_URL"), "Optional walking-route provider base URL")
	flag.Parse()

	cfg.Verbose = true
	cfg.Engine = appconf.DefaultEngine()
	cfg.Sources = appconf.DefaultSourcePolicy()
	cfg.Engine.RoutingBaseURL = *routingURL
	cfg.ApiKeys = ParseAPIKeys(apiKeysFlag)
	cfg.Env = appconf.EnvFlagToEnvironment(envFlag)

	if configPath != "" {
		fileCfg, err := appconf.LoadFromFile(configPath)
		if err != nil {
			logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
			logger.Error("failed to load config file", "error", err)
			os.Exit(1)
		}
		cfg = fileCfg.ToConfig()
	}

	coreApp, err := BuildApplication(cfg)
	if err != nil {
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		logger.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	srv, api := CreateServer(coreApp, cfg)

	if err := Run(srv, api, coreApp); err != nil {
		coreApp.Logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func envOrDefault(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

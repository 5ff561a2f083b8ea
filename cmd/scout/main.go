package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"SignalScout/internal/collector"
	"SignalScout/internal/config"
	"SignalScout/internal/engine"
	"SignalScout/internal/exporter"
	"SignalScout/internal/recorder"
	"SignalScout/internal/scheduler"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] SignalScout starting...")

	// .env is optional
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	cfg.ClampStrategy()

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.Source == "synthetic" {
		fetcher = collector.NewSyntheticFetcher(cfg.DataSource.Seed)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init collector
	col := collector.NewCollector(fetcher, cfg.DataSource.Symbols, cfg.DataSource.Days)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init exporter and write the static BI artifacts once
	exp := exporter.NewExporter(cfg.Export.OutputDir, cfg.Export.ProjectID, cfg.Export.DatasetID)
	if _, err := exp.WriteDashboards(); err != nil {
		log.Printf("[WARN] write dashboards: %v", err)
	}
	if _, err := exp.WriteLookML(); err != nil {
		log.Printf("[WARN] write lookml view: %v", err)
	}

	params := engine.Params{
		SMAShort:  cfg.Strategy.SMAShort,
		SMALong:   cfg.Strategy.SMALong,
		RSIPeriod: cfg.Strategy.RSIPeriod,
		RSIBuy:    cfg.Strategy.RSIBuy,
		RSISell:   cfg.Strategy.RSISell,
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, params, rec, exp)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing pipeline now")
		go sched.RunNow()
	}

	log.Println("[INFO] SignalScout is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] SignalScout stopped")
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"EmaAnalyzer/internal/collector"
	"EmaAnalyzer/internal/config"
	"EmaAnalyzer/internal/notifier"
	"EmaAnalyzer/internal/scheduler"
	"EmaAnalyzer/internal/warehouse"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] EmaAnalyzer starting...")

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

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRestFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init collector
	col := collector.NewCollector(fetcher, cfg.DataSource.Symbol, cfg.DataSource.LookbackDays)

	// Init warehouse sink
	var sink warehouse.Sink
	switch {
	case cfg.Warehouse.PostgresDSN != "":
		ps, err := warehouse.NewPostgresSink(cfg.Warehouse.PostgresDSN)
		if err != nil {
			log.Fatalf("[FATAL] init postgres sink: %v", err)
		}
		sink = ps
	case cfg.Warehouse.SQLitePath != "":
		ss, err := warehouse.NewSQLiteSink(cfg.Warehouse.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite sink failed, using noop: %v", err)
			sink = warehouse.NewNoopSink()
		} else {
			sink = ss
		}
	default:
		sink = warehouse.NewNoopSink()
	}
	defer sink.Close()
	log.Printf("[INFO] warehouse sink: %s", sink.Name())

	// Init Telegram notifier (disabled when no token is configured)
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, sink, tn, cfg.Analysis.BinEdges, cfg.Warehouse.IncludeRawTable)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing refresh now")
		go func() {
			if err := sched.Refresh(); err != nil {
				log.Printf("[ERROR] initial refresh: %v", err)
			}
		}()
	}

	log.Println("[INFO] EmaAnalyzer is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] EmaAnalyzer stopped")
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/jhagent/job-hunter/internal/cache"
	"github.com/jhagent/job-hunter/internal/clients/jsearch"
	"github.com/jhagent/job-hunter/internal/config"
	"github.com/jhagent/job-hunter/internal/events"
	"github.com/jhagent/job-hunter/internal/extract"
	"github.com/jhagent/job-hunter/internal/logger"
	"github.com/jhagent/job-hunter/internal/metrics"
	"github.com/jhagent/job-hunter/internal/notifier"
	"github.com/jhagent/job-hunter/internal/repositories"
	"github.com/jhagent/job-hunter/internal/services"
	"github.com/jhagent/job-hunter/internal/source"
	"github.com/jhagent/job-hunter/internal/summary"
	log "github.com/sirupsen/logrus"
)

func newSearchClient(cfg config.SourceConfig) *jsearch.Client {

	if cfg.RapidAPIKey == "" {
		return nil
	}

	client := jsearch.NewClient(cfg.RapidAPIKey,
		time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
	client.SetRateLimit(1)
	return client
}

func subscribe(bus EventBus.Bus, cfg *config.Config) {

	console := summary.NewConsole(os.Stdout)
	if err := bus.Subscribe(events.JobsFoundTopic, console.Handle); err != nil {
		log.Fatalf("can't subscribe console: %v", err)
	}

	exporter := summary.NewExporter(cfg.Source.ResultsDir, cfg.Search.Output)
	if err := bus.Subscribe(events.JobsFoundTopic, exporter.Handle); err != nil {
		log.Fatalf("can't subscribe exporter: %v", err)
	}

	if cfg.Notifier.Enabled() {
		_, err := notifier.NewTelegram(cfg.Notifier.TelegramToken, cfg.Notifier.TelegramChatID, bus)
		if err != nil {
			log.Fatalf("can't create telegram notifier: %v", err)
		}
	}
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	if cfg.Runner.MetricsPort != 0 {
		metrics.StartMetricsServer(cfg.Runner.MetricsPort)
	}

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	if err = dbContext.Migrate(); err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	runs := repositories.NewRunsRepository(dbContext.DB)

	bus := EventBus.New()
	subscribe(bus, cfg)

	gateway := source.NewGateway(newSearchClient(cfg.Source),
		cache.NewStore(cfg.Source.CacheDir), cfg.Source)

	pipeline := services.NewPipeline(bus, gateway, extract.New(), runs, cfg.Search.ToQuery())

	if cfg.Runner.WatchCron == "" {
		if err := pipeline.Run(); err != nil {
			log.Fatalf("run failed: %v", err)
		}
		return
	}

	scheduler, err := services.NewScheduler(pipeline, cfg.Runner.WatchCron)
	if err != nil {
		log.Fatalf("can't create scheduler: %v", err)
	}
	defer scheduler.Stop()

	cleaner, err := services.NewRunsCleaner(runs, cfg.Runner.RunRetentionDays)
	if err != nil {
		log.Fatalf("can't create runs cleaner: %v", err)
	}
	defer cleaner.Stop()

	if err := pipeline.Run(); err != nil {
		log.Errorf("initial run failed: %v", err)
	}

	<-ctx.Done()
	log.Info("Shutting down...")
}

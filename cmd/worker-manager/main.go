// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"marketplace-workers/internal/common/camunda"
	"marketplace-workers/internal/common/config"
	"marketplace-workers/internal/common/database"
	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/common/observability"
	"marketplace-workers/pkg/registry"

	ql "marketplace-workers/internal/workers/data-access/query-listings"
	sl "marketplace-workers/internal/workers/data-access/search-listings"

	apb "marketplace-workers/internal/workers/matching/apply-premium-boost"
	fbd "marketplace-workers/internal/workers/matching/filter-by-distance"
	rc "marketplace-workers/internal/workers/matching/rank-candidates"
	sc "marketplace-workers/internal/workers/matching/score-compatibility"

	psq "marketplace-workers/internal/workers/search/parse-search-query"

	gar "marketplace-workers/internal/workers/outreach/generate-auto-reply"
	nm "marketplace-workers/internal/workers/outreach/notify-match"
)

// retryWithBackoff attempts an operation with exponential backoff.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("config load failed: %v", err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting worker manager",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	taskRegistry := registry.Default()
	zapLog.Info("task registry loaded", zap.Int("tasks", len(taskRegistry.Tasks)))

	ctx := context.Background()

	// --- Zeebe client, with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected")

	// --- PostgreSQL, with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected")

	// --- Redis, with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected")

	// --- Elasticsearch, with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected")

	var workers []*camunda.Worker
	register := func(taskType string, handler camunda.JobHandler) {
		wcfg := cfg.Workers[taskType]
		if !wcfg.Enabled {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			return
		}
		maxJobs := wcfg.MaxJobsActive
		if maxJobs <= 0 {
			maxJobs = cfg.Camunda.MaxJobsActive
		}
		w := camunda.NewWorker(zeebe.GetClient(), taskType, maxJobs, handler, zapLog)
		w.Start()
		workers = append(workers, w)
	}

	workerTimeout := func(taskType string, fallback time.Duration) time.Duration {
		if t := cfg.Workers[taskType].Timeout; t > 0 {
			return time.Duration(t) * time.Millisecond
		}
		return fallback
	}

	// --- Search ---
	{
		c := psq.FromMatching(cfg.Matching)
		c.Timeout = workerTimeout(psq.TaskType, c.Timeout)
		register(psq.TaskType, psq.NewHandler(c, log))
	}

	// --- Data access ---
	{
		c := ql.LoadConfig()
		c.Timeout = workerTimeout(ql.TaskType, c.Timeout)
		register(ql.TaskType, ql.NewHandler(c, pg.DB, log))
	}
	{
		c := sl.LoadConfig()
		if cfg.Database.Elasticsearch.Index != "" {
			c.IndexName = cfg.Database.Elasticsearch.Index
		}
		c.Timeout = workerTimeout(sl.TaskType, c.Timeout)
		register(sl.TaskType, sl.NewHandler(c, esClient.Client, log))
	}

	// --- Matching pipeline ---
	{
		c := fbd.LoadConfig()
		c.Timeout = workerTimeout(fbd.TaskType, c.Timeout)
		register(fbd.TaskType, fbd.NewHandler(c, log))
	}
	{
		c := sc.FromMatching(cfg.Matching)
		c.Timeout = workerTimeout(sc.TaskType, c.Timeout)
		register(sc.TaskType, sc.NewHandler(c, pg.DB, redis.Client, log))
	}
	{
		c := apb.LoadConfig()
		c.Timeout = workerTimeout(apb.TaskType, c.Timeout)
		register(apb.TaskType, apb.NewHandler(c, pg.DB, redis.Client, log))
	}
	{
		c := rc.FromMatching(cfg.Matching)
		c.Timeout = workerTimeout(rc.TaskType, c.Timeout)
		register(rc.TaskType, rc.NewHandler(c, log))
	}

	// --- Outreach ---
	{
		c := gar.LoadConfig()
		c.Timeout = workerTimeout(gar.TaskType, c.Timeout)
		register(gar.TaskType, gar.NewHandler(c, log))
	}
	if cfg.Workers[nm.TaskType].Enabled {
		c := nm.LoadConfig()
		c.Timeout = workerTimeout(nm.TaskType, c.Timeout)
		if cfg.Notifications.AWS.Region != "" {
			c.AWSRegion = cfg.Notifications.AWS.Region
		}
		c.EmailEnabled = cfg.Notifications.AWS.SES.Enabled
		c.SMSEnabled = cfg.Notifications.AWS.SNS.Enabled
		if cfg.Notifications.AWS.SES.FromEmail != "" {
			c.SenderEmail = cfg.Notifications.AWS.SES.FromEmail
		}
		handler, err := nm.NewHandler(c, log)
		if err != nil {
			zapLog.Fatal("failed to create notify-match handler", zap.Error(err))
		}
		register(nm.TaskType, handler)
	}

	zapLog.Info("workers registered", zap.Int("count", len(workers)))

	// --- Health & metrics server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			status := "ready"
			code := http.StatusOK
			if err := zeebe.HealthCheck(r.Context()); err != nil {
				status = "not ready"
				code = http.StatusServiceUnavailable
			}
			w.WriteHeader(code)
			json.NewEncoder(w).Encode(map[string]string{
				"status": status,
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("health/metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("health/metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop(shutdownCtx)
	}

	if err := zeebe.Close(); err != nil {
		zapLog.Error("error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("worker manager stopped gracefully")
}

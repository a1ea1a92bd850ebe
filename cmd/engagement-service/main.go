package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/forum-engagement/internal/config"
	"github.com/pribylovaa/forum-engagement/internal/metrics"
	memqueue "github.com/pribylovaa/forum-engagement/internal/queue/memory"
	redisqueue "github.com/pribylovaa/forum-engagement/internal/queue/redis"
	"github.com/pribylovaa/forum-engagement/internal/service"
	"github.com/pribylovaa/forum-engagement/internal/storage"
	"github.com/pribylovaa/forum-engagement/internal/storage/memory"
	"github.com/pribylovaa/forum-engagement/internal/storage/mongo"
	"github.com/pribylovaa/forum-engagement/internal/storage/postgres"
	enghttp "github.com/pribylovaa/forum-engagement/internal/transport/http"
	"github.com/pribylovaa/forum-engagement/internal/transport/http/handlers"
	"github.com/pribylovaa/forum-engagement/internal/watch"
	logctx "github.com/pribylovaa/forum-engagement/pkg/log"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting engagement-service", "env", cfg.Env, "fanout_mode", cfg.Fanout.Mode)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()
	rootCtx = logctx.Into(rootCtx, log)

	store, err := openStorage(rootCtx, cfg)
	if err != nil {
		log.Error("storage_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if cerr := store.Close(closeCtx); cerr != nil {
			log.Warn("storage_close_failed", slog.String("err", cerr.Error()))
		}
	}()

	hub := watch.New(watch.NewBus())

	reg := prometheus.DefaultRegisterer
	m := metrics.New(reg)
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "engagement", Name: "watch_subscribers",
		Help: "Active state subscriptions.",
	}, func() float64 { return float64(hub.Subscribers()) }))

	opts := []service.Option{
		service.WithChangeNotifier(hub),
		service.WithMetrics(m),
	}

	// Очередь нужна только режиму queue: без воркеров её некому разбирать.
	if cfg.Fanout.Mode == config.FanoutQueue {
		queue, queueLen, err := openQueue(rootCtx, cfg, log)
		if err != nil {
			log.Error("queue_init_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}

		defer func() {
			if cerr := queue.Close(); cerr != nil {
				log.Warn("queue_close_failed", slog.String("err", cerr.Error()))
			}
		}()

		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "engagement", Name: "fanout_queue_pending",
			Help: "Notification items waiting in the fan-out queue.",
		}, queueLen))

		opts = append(opts, service.WithQueue(queue))
	}

	if cfg.DeadLetters.URL != "" {
		dl, err := postgres.New(rootCtx, cfg.DeadLetters.URL)
		if err != nil {
			log.Error("dead_letters_init_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		defer dl.Close()

		opts = append(opts, service.WithDeadLetters(dl))
		log.Info("dead_letters_enabled")
	}

	svc := service.New(store, *cfg, opts...)

	var bg sync.WaitGroup

	if cfg.Fanout.Mode == config.FanoutQueue {
		bg.Add(1)
		go func() {
			defer bg.Done()
			if err := svc.RunFanoutWorkers(rootCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("fanout_workers_failed", slog.String("err", err.Error()))
			}
		}()
		log.Info("fanout_workers_started", slog.Int("workers", cfg.Fanout.Workers))
	}

	if cfg.Membership.ReconcileInterval > 0 {
		bg.Add(1)
		go func() {
			defer bg.Done()
			svc.RunReconciler(rootCtx, cfg.Membership.ReconcileInterval)
		}()
		log.Info("reconciler_started", slog.Duration("interval", cfg.Membership.ReconcileInterval))
	}

	apiHandler := enghttp.NewRouter(handlers.New(svc, hub), enghttp.Options{
		Logger:   log,
		Timeout:  cfg.Timeouts.Service,
		Auth:     cfg.Auth,
		BasePath: "/v1",
	})

	var ready int32 // 0 — not ready; 1 — ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}

		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/v1/", apiHandler)

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)
	log.Info("service_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
		rootCancel()
	}

	atomic.StoreInt32(&ready, 0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown не ждёт hijacked-соединений: подписки закрываются вместе с шиной.
	if err := hub.Close(); err != nil {
		log.Warn("watch_close_failed", slog.String("err", err.Error()))
	}

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	bg.Wait()
	log.Info("service_stopped")
}

// openStorage — MongoDB, либо хранилище в памяти для DATABASE_URL=memory://.
func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if cfg.DB.URL == config.MemoryURL {
		slog.Warn("using in-memory storage, data is lost on restart")
		return memory.New(), nil
	}

	return mongo.New(ctx, cfg)
}

// openQueue — Redis-очередь рассылки, либо очередь в памяти процесса без REDIS_URL.
// Вторым значением возвращается источник для gauge длины очереди.
func openQueue(ctx context.Context, cfg *config.Config, log *slog.Logger) (service.Queue, func() float64, error) {
	if cfg.Redis.URL == "" {
		q := memqueue.New(cfg.Fanout.PollTimeout)
		return q, func() float64 { return float64(q.Len()) }, nil
	}

	q, err := redisqueue.New(ctx, cfg.Redis.URL, cfg.Redis.Prefix, cfg.Fanout.PollTimeout)
	if err != nil {
		return nil, nil, err
	}

	// Элементы, взятые упавшим процессом, возвращаются в очередь.
	n, err := q.RecoverInFlight(ctx)
	if err != nil {
		_ = q.Close()
		return nil, nil, err
	}
	if n > 0 {
		log.Warn("fanout_inflight_recovered", slog.Int("items", n))
	}

	return q, func() float64 {
		lenCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		n, err := q.Len(lenCtx)
		if err != nil {
			return 0
		}
		return float64(n)
	}, nil
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

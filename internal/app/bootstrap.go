package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/Gunvolt24/order_guard/config"
	"github.com/Gunvolt24/order_guard/internal/kafka"
	"github.com/Gunvolt24/order_guard/internal/ports"
	rest "github.com/Gunvolt24/order_guard/internal/transport/http"
	"github.com/Gunvolt24/order_guard/internal/usecase"
	"github.com/Gunvolt24/order_guard/internal/validation"
	"github.com/Gunvolt24/order_guard/pkg/httpx"
	"github.com/Gunvolt24/order_guard/pkg/logger"
	"github.com/Gunvolt24/order_guard/pkg/metrics"
	"github.com/Gunvolt24/order_guard/pkg/telemetry"
	"github.com/Gunvolt24/order_guard/pkg/validate"
)

const defaultGracefulTimeout = 5 * time.Second

// App: собранный сервис. MetricsServer и KafkaConsumer могут быть nil (отключены конфигурацией).
type App struct {
	Logger          ports.Logger
	HTTPServer      *http.Server
	MetricsServer   *http.Server
	KafkaConsumer   ports.MessageConsumer
	gracefulTimeout time.Duration
}

// Cleanup: освобождение ресурсов, собранных Bootstrap.
type Cleanup func()

// applyGinMode: неизвестное значение даёт debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap собирает зависимости: хранилище остатков, реестр валидаторов, конвейер,
// сервисы, HTTP и Kafka. Возвращённый Cleanup закрывает всё в обратном порядке.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	logg, syncLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		_ = syncLogger()
	}
	fail := func(err error) (*App, Cleanup, error) {
		cleanup()
		return nil, func() {}, err
	}

	metrics.MustRegister()

	if cfg.Tracing.Enabled {
		shutdown, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			closers = append(closers, func() {
				if err := shutdown(context.Background()); err != nil {
					logg.Warnf(ctx, "shutdown tracing: %v", err)
				}
			})
		}
	}

	stock, err := buildStock(ctx, cfg, logg)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, stock.close)

	if err := stock.seed(ctx, cfg.Stock.SeedFile, logg); err != nil {
		return fail(err)
	}

	rules := validate.Rules{
		MaxQuantity:      cfg.Rules.MaxQuantity,
		ChargeTolerance:  cfg.Rules.ChargeTolerance,
		BlockedCustomers: cfg.Rules.BlockedCustomers,
	}
	registry := validation.NewRegistry(validate.DefaultValidators(rules, stock.reader)...)
	pipeline := validation.NewPipeline(registry, logg, &validation.LogRejection{Log: logg})
	logg.Infof(ctx, "validators registered ids=%v", registry.IDs())

	if cfg.Kafka.Enabled && cfg.Kafka.RejectTopic != "" {
		publisher := kafka.NewRejectionPublisher(&kafka.PublisherConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.RejectTopic,
			WriteTimeout: cfg.Kafka.WriteTimeout,
		})
		pipeline.OnReject(publisher)
		closers = append(closers, func() {
			if err := publisher.Close(); err != nil {
				logg.Warnf(ctx, "rejection publisher close error: %v", err)
			}
		})
	}

	orderService := usecase.NewOrderService(pipeline, logg)
	scoreService := usecase.NewScoreService(cfg.Scores.Top)

	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	handler := rest.NewHandler(orderService, scoreService, registry, logg, cfg.HTTP.HandlerTimeout)
	var extra []gin.HandlerFunc
	if cfg.HTTP.RateLimit > 0 {
		extra = append(extra, httpx.RateLimit(rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.RateBurst))
		logg.Infof(ctx, "http rate limit %.1f rps burst=%d", cfg.HTTP.RateLimit, cfg.HTTP.RateBurst)
	}
	router := rest.NewRouter(handler, otelServiceName, extra...)

	app := &App{
		Logger: logg,
		HTTPServer: &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           router,
			ReadTimeout:       cfg.HTTP.ReadTimeout,
			WriteTimeout:      cfg.HTTP.WriteTimeout,
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
			IdleTimeout:       cfg.HTTP.IdleTimeout,
		},
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	if addr := cfg.Metrics.Addr; addr != "" && addr != cfg.HTTP.Addr {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		app.MetricsServer = &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		}
	}

	if cfg.Kafka.Enabled {
		consumer := kafka.NewConsumer(&kafka.ConsumerConfig{
			Brokers:        cfg.Kafka.Brokers,
			GroupID:        cfg.Kafka.GroupID,
			Topic:          cfg.Kafka.Topic,
			StartOffset:    cfg.Kafka.StartOffset,
			ProcessTimeout: cfg.Kafka.ProcessTimeout,
			RetryInitial:   cfg.Kafka.RetryInitial,
			RetryMax:       cfg.Kafka.RetryMax,
			BrokenAttempts: cfg.Kafka.BrokenAttempts,
		}, orderService, logg)
		app.KafkaConsumer = consumer
		closers = append(closers, func() {
			if err := consumer.Close(); err != nil {
				logg.Warnf(ctx, "kafka consumer close error: %v", err)
			}
		})
	}

	return app, cleanup, nil
}

// Run запускает HTTP-серверы и консьюмер и ждёт отмены ctx или первой фатальной ошибки,
// после чего останавливает всё с таймаутом gracefulTimeout.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if a.KafkaConsumer != nil {
		g.Go(func() error {
			a.Logger.Infof(gctx, "kafka consumer starting")
			err := a.KafkaConsumer.Run(gctx)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		})
	}

	for _, srv := range a.servers() {
		g.Go(func() error {
			a.Logger.Infof(gctx, "http server starting (addr=%s)", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
		a.shutdown(ctx)
		return nil
	})

	err := g.Wait()
	if err != nil {
		a.Logger.Errorf(ctx, "service stopped with error: %v", err)
		return err
	}
	a.Logger.Infof(ctx, "service stopped")
	return nil
}

func (a *App) servers() []*http.Server {
	out := []*http.Server{a.HTTPServer}
	if a.MetricsServer != nil {
		out = append(out, a.MetricsServer)
	}
	return out
}

func (a *App) shutdown(ctx context.Context) {
	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = defaultGracefulTimeout
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	for _, srv := range a.servers() {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warnf(ctx, "http server shutdown failed (addr=%s): %v", srv.Addr, err)
		} else {
			a.Logger.Infof(ctx, "http server stopped gracefully (addr=%s)", srv.Addr)
		}
	}

	if a.KafkaConsumer != nil {
		if err := a.KafkaConsumer.Close(); err != nil {
			a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
		}
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/modules/inquiry"
	"github.com/dmitrymomot/storefront/modules/inquiry/views"
	"github.com/dmitrymomot/storefront/pkg/clientip"
	appconfig "github.com/dmitrymomot/storefront/pkg/config"
	"github.com/dmitrymomot/storefront/pkg/email"
	"github.com/dmitrymomot/storefront/pkg/httpserver"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/ratelimit"
	"github.com/dmitrymomot/storefront/pkg/redis"
	"github.com/dmitrymomot/storefront/pkg/requestid"
)

const langCookieMaxAge = 365 * 24 * time.Hour

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg config
			if err := appconfig.Load(&cfg); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func newLogger(cfg appConfig) *slog.Logger {
	return logger.New(
		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			i18n.LoggerExtractor(),
		),
	)
}

func newTranslator(ctx context.Context, cfg appConfig, log *slog.Logger) (*i18n.Translator, error) {
	return i18n.NewTranslator(ctx, inquiry.Locales(),
		i18n.WithDefaultLanguage(cfg.DefaultLanguage),
		i18n.WithLogger(log),
		i18n.WithMissingTranslationsLogging(cfg.Env.IsDevelopment()),
	)
}

func newValidator(cfg inquiry.Config) (*inquiry.Validator, error) {
	opts, err := cfg.ValidatorOptions()
	if err != nil {
		return nil, err
	}
	return inquiry.NewValidator(opts...), nil
}

func serve(ctx context.Context, cfg config) error {
	log := newLogger(cfg.App)
	slog.SetDefault(log)

	tr, err := newTranslator(ctx, cfg.App, log)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}
	loc := inquiry.NewLocalizer(tr)

	catalog, err := inquiry.LoadCatalog(cfg.Inquiry.CatalogPath)
	if err != nil {
		return err
	}

	v, err := newValidator(cfg.Inquiry)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	pages := views.New(loc, catalog)

	var submitter inquiry.Submitter = inquiry.SimulatedSubmitter{Delay: cfg.Inquiry.SubmitDelay}
	if cfg.Inquiry.Inbox != "" {
		sender, err := email.New(cfg.Email, log)
		if err != nil {
			return err
		}
		sender = email.Instrument(sender, reg, cfg.App.MetricsNS, cfg.Email.Provider)
		submitter = inquiry.NewMailSubmitter(sender, cfg.Inquiry.Inbox, cfg.Inquiry.BusinessName, pages.Notification, loc, catalog)
	} else {
		log.Warn("INQUIRY_INBOX not set, submissions are simulated",
			logger.Component("inquiry"),
			logger.Duration(cfg.Inquiry.SubmitDelay),
		)
	}

	svc := inquiry.NewService(v, submitter,
		inquiry.WithLogger(log),
		inquiry.WithMetrics(inquiry.NewMetrics(reg, cfg.App.MetricsNS)),
		inquiry.WithSuccessDuration(cfg.Inquiry.SuccessDuration),
	)

	errorHandler := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		ErrorPage:  views.ErrorPage,
		ErrorToast: views.ErrorToast,
		Localize: func(ctx context.Context, key string) string {
			return tr.Tc(ctx, key)
		},
	})

	opts := []inquiry.HandlersOption{
		inquiry.WithLanguages(tr.Languages()...),
		inquiry.WithHandlersLogger(log),
	}
	var checks []func(context.Context) error
	var store ratelimit.Store
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer client.Close()

		store = redis.NewBucketStore(client, redis.WithBucketTTL(2*cfg.Inquiry.RateInterval))
		checks = append(checks, redis.Healthcheck(client))
	} else {
		mem := ratelimit.NewMemoryStore(time.Minute)
		defer mem.Close()
		store = mem
	}

	if cfg.Inquiry.RateLimit > 0 {
		limiter, err := ratelimit.NewTokenBucket(store, cfg.Inquiry.RateLimit, cfg.Inquiry.RateInterval)
		if err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
		opts = append(opts, inquiry.WithLimiter(limiter))
	}

	inquiries := inquiry.NewHandlers(cfg.Inquiry, svc, catalog, loc, pages, errorHandler, opts...)

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware(),
		i18n.Middleware(i18n.NewMatcher(tr.Languages()...),
			i18n.WithPersistedChoice("lang", "lang", langCookieMaxAge),
		),
	)
	r.Get("/healthz", httpserver.HealthCheckHandler(log, checks...))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.Mount("/", inquiries.Handle())

	log.Info("starting storefront",
		slog.String("addr", cfg.HTTP.Addr),
		slog.String("version", version),
		slog.Any("languages", tr.Languages()),
	)

	return httpserver.New(cfg.HTTP, log).Run(ctx, r)
}

// README: Composition root; wires config into runners, stores, and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"freightcalc/internal/ai"
	"freightcalc/internal/config"
	httptransport "freightcalc/internal/http"
	"freightcalc/internal/infra"
	"freightcalc/internal/locale"
	"freightcalc/internal/maps"
	"freightcalc/internal/modules/flow"
	"freightcalc/internal/modules/quote"
)

const shutdownTimeout = 10 * time.Second

// App holds the wired services and the resources to release on Close.
type App struct {
	Config   config.Config
	Logger   *zap.Logger
	Catalog  *locale.Catalog
	Quotes   *quote.Service
	Flows    *flow.Service
	Verifier infra.TokenVerifier

	closers []func()
}

// New wires every optional backend the config enables. Call Close when done.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}
	if err := a.init(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	cfg := a.Config

	catalog, err := locale.NewCatalog(cfg.Locale.Default)
	if err != nil {
		return err
	}
	a.Catalog = catalog

	var history quote.History
	if cfg.DB.DSN != "" {
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, pool.Close)
		history = quote.NewStore(pool)
	}
	a.Quotes = quote.NewService(history)

	runner, err := a.runner(ctx)
	if err != nil {
		return err
	}

	if cfg.Redis.Addr != "" {
		client, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		runner = flow.NewCachingRunner(runner, flow.NewRedisCache(client), cfg.Flow.CacheTTL, a.Logger,
			flow.FlowShippingInstructions)
	}

	opts := []flow.ServiceOption{flow.WithTimeout(cfg.Flow.Timeout)}
	if cfg.Kafka.Broker != "" {
		pub := infra.NewKafkaPublisher(cfg.Kafka.Broker, cfg.Kafka.Topic, a.Logger)
		a.closers = append(a.closers, func() { _ = pub.Close() })
		opts = append(opts, flow.WithEvents(pub))
	}
	a.Flows = flow.NewService(runner, a.Logger, opts...)

	switch cfg.Auth.Mode {
	case config.AuthToken:
		a.Verifier = infra.NewStaticTokenVerifier(cfg.Auth.Token)
	case config.AuthFirebase:
		v, err := infra.NewFirebaseVerifier(ctx, cfg.Auth.ProjectID, cfg.Auth.CredentialsFile)
		if err != nil {
			return err
		}
		a.Verifier = v
	}
	return nil
}

// runner picks the remote flow runtime when configured, else the in-process registry.
func (a *App) runner(ctx context.Context) (flow.Runner, error) {
	cfg := a.Config
	if cfg.Flow.RunnerURL != "" {
		a.Logger.Info("using remote flow runtime", zap.String("url", cfg.Flow.RunnerURL))
		return flow.NewRemoteRunner(cfg.Flow.RunnerURL, &http.Client{Timeout: cfg.Flow.Timeout}), nil
	}

	llm, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, llm.Close)

	var places ai.PlaceResolver
	if cfg.Maps.APIKey != "" {
		geo, err := maps.NewGeocoder(cfg.Maps.APIKey)
		if err != nil {
			return nil, err
		}
		places = geo
	}

	reg := flow.NewRegistry()
	advisor := ai.NewFreightAdvisor(llm, places, a.Logger)
	if err := flow.RegisterFreightFlows(reg, advisor, a.Quotes, a.Catalog); err != nil {
		return nil, err
	}
	a.Logger.Info("using in-process flows", zap.Int("flows", len(reg.Descriptors())))
	return reg, nil
}

// Handler builds the HTTP handler over the wired services.
func (a *App) Handler() http.Handler {
	return httptransport.NewServer(httptransport.ServerDeps{
		Flows:    a.Flows,
		Quotes:   a.Quotes,
		Catalog:  a.Catalog,
		Verifier: a.Verifier,
		Logger:   a.Logger,
	}).Routes()
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down gracefully.
func (a *App) Serve(ctx context.Context) error {
	server := &http.Server{
		Addr:              a.Config.HTTP.Addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Logger.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.Logger.Info("shutting down http server")
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

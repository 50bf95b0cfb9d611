package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"github.com/sycelim/delivery-web/internal/config"
	"github.com/sycelim/delivery-web/internal/gateway/deliveryapi"
	"github.com/sycelim/delivery-web/internal/http/handlers"
	"github.com/sycelim/delivery-web/internal/http/router"
	"github.com/sycelim/delivery-web/internal/logx"
	"github.com/sycelim/delivery-web/internal/metrics"
	"github.com/sycelim/delivery-web/internal/view"
	"github.com/sycelim/delivery-web/internal/web"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	loadConfig func() (*config.Config, error)
	logFatalf  func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		loadConfig: config.Load,
		logFatalf:  log.Fatalf,
	}
}

// WithConfigLoader sets the configuration loading function
func (b *ContainerBuilder) WithConfigLoader(fn func() (*config.Config, error)) *ContainerBuilder {
	if fn != nil {
		b.loadConfig = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerGateway(container); err != nil {
		return nil, fmt.Errorf("gateway: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context, loadConfig func() (*config.Config, error)) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		loadConfig,
	)
}

// gatewayCounters bundles the two delivery API counter vecs for injection.
type gatewayCounters struct {
	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// registerOrReuse registers the vec, reusing the already-registered collector
// when a second container is built in the same process (tests).
func registerOrReuse(vec *prometheus.CounterVec) *prometheus.CounterVec {
	if err := prometheus.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
	}
	return vec
}

func registerGateway(container *dig.Container) error {
	return provideAll(container,
		func() gatewayCounters {
			return gatewayCounters{
				requests: registerOrReuse(metrics.NewGatewayRequestsTotal()),
				failures: registerOrReuse(metrics.NewGatewayFailuresTotal()),
			}
		},
		func(cfg *config.Config, logger logx.Logger, counters gatewayCounters) *deliveryapi.Client {
			return deliveryapi.New(cfg.APIBaseURL, cfg.APITimeout, logger, counters.requests, counters.failures)
		},
		func(client *deliveryapi.Client) handlers.Gateway { return client },
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		web.NewRenderer,
		view.NewRowLocks,
		handlers.New,
		func(cfg *config.Config, logger logx.Logger, renderer *web.Renderer, gw handlers.Gateway) *handlers.AuthHandler {
			return handlers.NewAuthHandler(logger, renderer, gw, cfg.CookieSecure)
		},
		func(cfg *config.Config, logger logx.Logger, renderer *web.Renderer, gw handlers.Gateway, locks *view.RowLocks) *handlers.AdminHandler {
			return handlers.NewAdminHandler(logger, renderer, gw, locks, cfg.CookieSecure)
		},
		func(cfg *config.Config, logger logx.Logger, renderer *web.Renderer, gw handlers.Gateway) *handlers.LivreurHandler {
			return handlers.NewLivreurHandler(logger, renderer, gw, cfg.CookieSecure)
		},
		func(cfg *config.Config, h *handlers.Handlers, auth *handlers.AuthHandler, admin *handlers.AdminHandler, livreur *handlers.LivreurHandler, logger logx.Logger) http.Handler {
			return router.New(h, auth, admin, livreur, logger, cfg.CookieSecure)
		},
		serverProvider,
	)
}

package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runlog/internal/controllers"
	"runlog/internal/persistence/interfaces"
	"runlog/internal/providers"
	"runlog/internal/structures"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	WebServer *http.Server

	conf    *structures.Config
	logger  providers.Logger
	gateway interfaces.GatewayInterface
}

func NewApp(healthController *controllers.HealthController, gateway interfaces.GatewayInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) *App {
	// Inner mux: API routes
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}

	// Wrap API routes with metrics and request logging
	instrumentedAPI := providers.RequestMiddleware(metrics, logger, apiMux)

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)

	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      mux,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		conf:    conf,
		logger:  logger,
		gateway: gateway,
	}
}

// Run serves until SIGINT/SIGTERM or a listener error, then shuts the server
// down and flushes any pending save.
func (a *App) Run() error {
	a.logger.Infof(providers.TypeApp, "Starting %s", a.conf.AppName)

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", a.WebServer.Addr)
		if err := a.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-stop:
		a.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		runErr = fmt.Errorf("server error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.WebServer.Shutdown(ctx); err != nil && runErr == nil {
		runErr = err
	}
	if err := a.gateway.Close(); err != nil {
		a.logger.Errorf(providers.TypeStorage, "Final save failed: %s", err)
		if runErr == nil {
			runErr = err
		}
	}
	if runErr == nil {
		a.logger.Infof(providers.TypeApp, "gracefully stopped")
	}
	return runErr
}

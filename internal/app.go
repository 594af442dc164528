package internal

import (
	"context"
	"fmt"
	"io"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	"wallfeed/internal/controllers"
	"wallfeed/internal/providers"
	"wallfeed/internal/snapshot/interfaces"
	"wallfeed/internal/storage"
	"wallfeed/internal/structures"
)

type App struct {
	WebServer *http.Server
	scheduler interfaces.SchedulerInterface
	store     storage.PostStore
	lastSeen  providers.LastSeenStoreInterface
	conf      *structures.Config
	logger    providers.Logger
}

func NewApp(healthController *controllers.HealthController, scheduler interfaces.SchedulerInterface, store storage.PostStore, lastSeen providers.LastSeenStoreInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) (*App, error) {
	instrumentedAPI := providers.MetricsMiddleware(metrics, router.Mux())

	// Outer mux: infrastructure + instrumented timeline routes
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
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		scheduler: scheduler,
		store:     store,
		lastSeen:  lastSeen,
		conf:      conf,
		logger:    logger,
	}, nil
}

// Run restores the snapshot, serves until SIGINT/SIGTERM and persists on the
// way out.
func (a *App) Run() error {
	a.logger.Infof(providers.TypeApp, "Starting %s", a.conf.AppName)
	if err := a.scheduler.Restore(); err != nil {
		a.logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}
	a.scheduler.Init()

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

	select {
	case <-stop:
		a.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		a.scheduler.Stop()
		a.scheduler.Close()
		a.closeStores()
		return fmt.Errorf("server error: %w", err)
	}

	return a.Shutdown()
}

func (a *App) Shutdown() error {
	a.scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.WebServer.Shutdown(ctx); err != nil {
		return err
	}
	err := a.scheduler.Persist()
	a.scheduler.Close()
	a.closeStores()
	if err != nil {
		return err
	}
	a.logger.Infof(providers.TypeApp, "gracefully stopped")
	a.logger.Close()
	return nil
}

func (a *App) closeStores() {
	if closer, ok := a.lastSeen.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			a.logger.Warnf(providers.TypeApp, "Closing last-seen store: %s", err)
		}
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warnf(providers.TypeApp, "Closing post store: %s", err)
	}
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"manufacturing_analytics/internal/dataset"
	"manufacturing_analytics/internal/handlers"
	"manufacturing_analytics/internal/logger"
	"manufacturing_analytics/internal/repository"
	"manufacturing_analytics/internal/repository/db"
	"manufacturing_analytics/internal/server"
	"manufacturing_analytics/internal/service"

	"github.com/spf13/viper"
)

const (
	defaultDataPath = "smart_manufacturing_data_processed.csv"
	defaultDBPath   = "analytics.db"
	defaultPort     = "8080"

	defaultTempThreshold = 90
	defaultVibThreshold  = 70
)

func main() {
	// load config.yml first so the log level comes from it
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log.level"))

	// open DB for export history and presets
	store, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// load the sensor dataset once; it is immutable afterwards
	ds, err := loadDataset(log)
	if err != nil {
		log.Fatalw("failed to load dataset", "err", err)
	}
	log.Infow("dataset loaded", "rows", ds.Len())

	// wire dependencies
	repos := repository.NewRepository(store)
	services := service.NewService(ds, repos)
	apiHandler := handlers.NewHandler(services, log, anomalyDefaults())

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", defaultDBPath)
		dbPath = defaultDBPath
	}
	return db.InitDB(dbPath)
}

// loadDataset reads and derives the sensor dataset from the configured CSV.
func loadDataset(log *logger.Logger) (*dataset.Dataset, error) {
	dataPath := viper.GetString("data.path")
	if dataPath == "" {
		log.Infow("data.path not set in config; using default file", "default", defaultDataPath)
		dataPath = defaultDataPath
	}
	return dataset.NewLoader().Load(dataPath)
}

// anomalyDefaults reads the slider defaults for the anomaly view.
func anomalyDefaults() handlers.AnomalyDefaults {
	d := handlers.AnomalyDefaults{
		Temperature: viper.GetFloat64("anomaly.temperature"),
		Vibration:   viper.GetFloat64("anomaly.vibration"),
	}
	if d.Temperature == 0 {
		d.Temperature = defaultTempThreshold
	}
	if d.Vibration == 0 {
		d.Vibration = defaultVibThreshold
	}
	return d
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = defaultPort
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}

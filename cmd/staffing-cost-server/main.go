package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/staffing-cost/internal/config"
	"github.com/iwvelando/staffing-cost/internal/logging"
	"github.com/iwvelando/staffing-cost/internal/server"
	"github.com/iwvelando/staffing-cost/internal/session"
	"github.com/iwvelando/staffing-cost/internal/store"
	"github.com/iwvelando/staffing-cost/pkg/constants"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	serverConf, err := server.LoadConfig(*serverConfigLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *serverConfigLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(serverConf.MergeLogging(conf.Logging), *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, conf.Storage, logger)
	if err != nil {
		logger.Fatal("failed to open input store",
			zap.String("op", "main"),
			zap.String("driver", conf.Storage.Driver),
			zap.Error(err),
		)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to close input store", zap.String("op", "main"), zap.Error(err))
		}
	}()

	sess := session.New(st, session.Options{
		Policies: conf.Policies(),
		Base:     conf.InitialSnapshot(),
		Logger:   logger,
	})
	if _, err := sess.Restore(ctx); err != nil {
		logger.Warn("failed to restore stored inputs",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	timeouts := serverConf.Timeouts()
	srv := &http.Server{
		Addr: serverConf.Address,
		Handler: server.NewHandler(logger, sess, server.Options{
			MaxBodySize:  serverConf.BodySizeBytes(),
			Version:      version,
			Capabilities: conf.Capabilities(),
		}),
		ReadTimeout:  timeouts.Read,
		WriteTimeout: timeouts.Write,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			zap.String("op", "main"),
			zap.String("address", serverConf.Address),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server crashed", zap.String("op", "main"), zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received", zap.String("op", "main"))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.String("op", "main"), zap.Error(err))
	}
}

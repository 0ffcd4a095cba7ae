package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/jmoralesv/vin-tracker/internal/app/server"
	"github.com/jmoralesv/vin-tracker/internal/app/service"
	"github.com/jmoralesv/vin-tracker/internal/config"
	"github.com/jmoralesv/vin-tracker/internal/logger"
	"github.com/jmoralesv/vin-tracker/internal/ocr"
	"github.com/jmoralesv/vin-tracker/internal/repository"
	"github.com/jmoralesv/vin-tracker/internal/storage"
	"github.com/jmoralesv/vin-tracker/internal/worker"

	_ "net/http/pprof"
)

var buildVersion string
var buildDate string
var buildCommit string

func main() {
	options := config.Parse()

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)

	zapLogger, err := logger.New(options.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	if options.EnablePprof {
		go func() {
			zapLogger.Info("Starting pprof server", zap.String("addr", "localhost:6060"))
			if err := http.ListenAndServe("localhost:6060", nil); err != nil {
				zapLogger.Error("pprof server error", zap.Error(err))
			}
		}()
	}

	var s storage.Store

	switch {
	case options.DatabaseDSN != "":
		zapLogger.Info("using postgres", zap.String("dsn", options.DatabaseDSN))
		db, err := repository.InitPostgres(options.DatabaseDSN, zapLogger)
		if err != nil {
			panic(err)
		}
		defer db.Close()
		s = repository.NewVinRepository(db, repository.DialectPostgres, zapLogger)

	case options.SQLitePath != "":
		zapLogger.Info("using sqlite", zap.String("path", options.SQLitePath))
		db, err := repository.InitSQLite(options.SQLitePath, zapLogger)
		if err != nil {
			panic(err)
		}
		defer db.Close()
		s = repository.NewVinRepository(db, repository.DialectSQLite, zapLogger)

	default:
		zapLogger.Info("using in memory storage")
		s, err = storage.CreateMemoryStorage()
		if err != nil {
			panic(err)
		}
	}

	vinService := service.NewVinService(s, zapLogger)

	// The image import queue only runs when an OCR key is configured;
	// the rest of the API works without it.
	var queue *worker.ImportWorker
	if options.OCRAPIKey != "" {
		client := ocr.NewClient(options.OCRAPIKey, zapLogger)
		queue = worker.NewImportWorker(client, zapLogger)
		go queue.Run(context.Background())
	} else {
		zapLogger.Info("no OCR api key, image import disabled")
	}

	r := server.Init(vinService, queue, zapLogger)

	if options.EnableHTTPS {
		manager := &autocert.Manager{
			Cache:  autocert.DirCache("cache-dir"),
			Prompt: autocert.AcceptTOS,
		}
		srv := &http.Server{
			Addr:      ":443",
			Handler:   r,
			TLSConfig: manager.TLSConfig(),
		}
		zapLogger.Info("Server is running with TLS", zap.String("addr", options.Addr))
		if err := srv.ListenAndServeTLS("", ""); err != nil {
			panic(err)
		}
	} else {
		zapLogger.Info("Server is running", zap.String("addr", options.Addr))
		if err := http.ListenAndServe(options.Addr, r); err != nil {
			panic(err)
		}
	}
}

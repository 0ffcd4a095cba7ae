// Package server assembles the chi router for the VIN tracker API.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jmoralesv/vin-tracker/internal/app/handler"
	"github.com/jmoralesv/vin-tracker/internal/app/service"
	"github.com/jmoralesv/vin-tracker/internal/middleware"
	"github.com/jmoralesv/vin-tracker/internal/worker"
)

// Init wires every endpoint onto a router. The OCR queue is optional;
// when nil the image import endpoints are not mounted.
func Init(s service.VinServiceIface, queue *worker.ImportWorker, logger *zap.Logger) *chi.Mux {
	post := handler.NewPost(s, logger)
	get := handler.NewGet(s, logger)

	r := chi.NewRouter()
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.WithGzipRequest)
	r.Use(middleware.WithGzipResponse)

	r.Route("/api/vins", func(r chi.Router) {
		r.Get("/", get.HandleRecords)
		r.Post("/", post.HandleAdd)
		r.Put("/", post.HandleUpdate)
		r.Post("/repeated", post.HandleAddRepeated)
		r.Post("/check", post.HandleCheck)
		r.Post("/delete", post.HandleDelete)
		r.Post("/restore", post.HandleRestore)
		r.Post("/toggle-registered", post.HandleToggleRegistered)

		r.Post("/register-all", post.HandleRegisterAll())
		r.Post("/unregister-all", post.HandleUnregisterAll())
		r.Post("/delete-all", post.HandleDeleteAll())
		r.Post("/restore-all", post.HandleRestoreAll())
		r.Post("/empty-trash", post.HandleEmptyTrash())

		r.Get("/trash", get.HandleTrash)
		r.Get("/export", get.HandleExport)
		r.Get("/verification", get.HandleVerification)
	})

	r.Post("/api/import/text", post.HandleImportText)
	r.Post("/api/import/commit", post.HandleImportCommit)

	if queue != nil {
		ocr := handler.NewOCR(queue, logger)
		r.Route("/api/ocr", func(r chi.Router) {
			r.Post("/", ocr.HandleUpload)
			r.Get("/status", ocr.HandleStatus)
			r.Put("/{id}/vin", ocr.HandleSetVIN)
			r.Delete("/{id}", ocr.HandleRemove)
			r.Delete("/", ocr.HandleRemoveAll)
		})
	}

	r.Get("/api/health", get.HandleHealth)
	r.Get("/ping", get.PingDB)

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}

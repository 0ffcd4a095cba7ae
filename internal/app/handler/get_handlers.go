package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jmoralesv/vin-tracker/internal/app/service"
	"github.com/jmoralesv/vin-tracker/internal/models"
)

// GetHandler owns the read-only endpoints: listings, trash, export,
// verification and health.
type GetHandler struct {
	vinService service.VinServiceIface
	logger     *zap.Logger
}

func NewGet(s service.VinServiceIface, l *zap.Logger) *GetHandler {
	return &GetHandler{
		vinService: s,
		logger:     l,
	}
}

func queryFilter(req *http.Request) models.Filter {
	q := req.URL.Query()
	return models.Filter{
		Date:       q.Get("date"),
		Registered: q.Get("registered"),
		Search:     q.Get("search"),
		Repeated:   q.Get("repeated"),
	}
}

func queryType(req *http.Request) string {
	typ := req.URL.Query().Get("type")
	if typ == "" {
		return models.CollectionAll
	}
	return typ
}

// HandleRecords lists both collections for the query filter.
func (h *GetHandler) HandleRecords(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 10*time.Second)
	defer cancel()

	records, err := h.vinService.GetRecords(ctx, queryType(req), queryFilter(req))
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}
	writeJSON(res, h.logger, http.StatusOK, records)
}

func (h *GetHandler) HandleTrash(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 10*time.Second)
	defer cancel()

	records, err := h.vinService.Trash(ctx, queryType(req))
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}
	writeJSON(res, h.logger, http.StatusOK, records)
}

// HandleExport streams the unregistered VINs as a downloadable text
// file. An empty result is a 404 the client shows verbatim.
func (h *GetHandler) HandleExport(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 10*time.Second)
	defer cancel()

	text, err := h.vinService.Export(ctx, queryType(req), queryFilter(req))
	if err != nil {
		if errors.Is(err, service.ErrNothingToExport) {
			writeJSON(res, h.logger, http.StatusNotFound, models.Response{Message: err.Error()})
			return
		}
		writeServiceError(res, h.logger, err)
		return
	}

	filename := "vins-" + time.Now().Format("2006-01-02") + ".txt"
	res.Header().Set("Content-Type", "text/plain; charset=utf-8")
	res.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	res.WriteHeader(http.StatusOK)
	if _, err := res.Write([]byte(text)); err != nil {
		h.logger.Error("export write failed", zap.Error(err))
	}
}

func (h *GetHandler) HandleVerification(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 10*time.Second)
	defer cancel()

	report, err := h.vinService.Verification(ctx)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}
	writeJSON(res, h.logger, http.StatusOK, report)
}

// HandleHealth reports store connectivity so the client can disable
// mutating actions before they fail.
func (h *GetHandler) HandleHealth(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	if err := h.vinService.Ping(ctx); err != nil {
		writeJSON(res, h.logger, http.StatusServiceUnavailable, models.HealthResponse{
			Status:   "error",
			Database: "down",
			Message:  err.Error(),
		})
		return
	}
	writeJSON(res, h.logger, http.StatusOK, models.HealthResponse{
		Status:   "ok",
		Database: "up",
	})
}

// PingDB is the bare liveness probe.
func (h *GetHandler) PingDB(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	if err := h.vinService.Ping(ctx); err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	res.WriteHeader(http.StatusOK)
}

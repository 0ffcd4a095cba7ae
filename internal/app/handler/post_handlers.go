package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jmoralesv/vin-tracker/internal/app/service"
	"github.com/jmoralesv/vin-tracker/internal/importer"
	"github.com/jmoralesv/vin-tracker/internal/models"
)

// PostHandler owns every mutating endpoint of the record API.
type PostHandler struct {
	vinService service.VinServiceIface
	logger     *zap.Logger
}

func NewPost(s service.VinServiceIface, l *zap.Logger) *PostHandler {
	return &PostHandler{
		vinService: s,
		logger:     l,
	}
}

func mutationContext(req *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(req.Context(), 5*time.Second)
}

func bulkFilter(r models.BulkRequest) models.Filter {
	return models.Filter{
		Date:       r.Date,
		Registered: r.Registered,
		Search:     r.Search,
		Repeated:   r.Repeated,
	}
}

// HandleAdd inserts one VIN. Duplicates come back as 409 with the
// decision payload, not as a failure.
func (h *PostHandler) HandleAdd(res http.ResponseWriter, req *http.Request) {
	var request models.AddRequest
	if err := decodeJSONBody(res, req, &request); err != nil {
		writeMalformed(res, h.logger, err)
		return
	}

	ctx, cancel := mutationContext(req)
	defer cancel()

	rec, err := h.vinService.Add(ctx, request.VIN, request.Type)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, h.logger, http.StatusCreated, models.Response{
		Success: true,
		Message: fmt.Sprintf("VIN agregado a %s", request.Type),
		Data:    rec,
	})
}

// HandleAddRepeated confirms the repeat flow for a registered service
// VIN.
func (h *PostHandler) HandleAddRepeated(res http.ResponseWriter, req *http.Request) {
	var request models.AddRequest
	if err := decodeJSONBody(res, req, &request); err != nil {
		writeMalformed(res, h.logger, err)
		return
	}

	ctx, cancel := mutationContext(req)
	defer cancel()

	rec, err := h.vinService.AddRepeated(ctx, request.VIN, request.Type)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, h.logger, http.StatusOK, models.Response{
		Success: true,
		Message: fmt.Sprintf("VIN repetido (%d veces)", rec.RepeatCount),
		Data:    rec,
	})
}

func (h *PostHandler) HandleUpdate(res http.ResponseWriter, req *http.Request) {
	var request models.UpdateRequest
	if err := decodeJSONBody(res, req, &request); err != nil {
		writeMalformed(res, h.logger, err)
		return
	}

	ctx, cancel := mutationContext(req)
	defer cancel()

	rec, err := h.vinService.Update(ctx, request.ID, request.VIN, request.Type)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, h.logger, http.StatusOK, models.Response{
		Success: true,
		Message: "VIN actualizado",
		Data:    rec,
	})
}

func (h *PostHandler) HandleDelete(res http.ResponseWriter, req *http.Request) {
	var request models.MutateRequest
	if err := decodeJSONBody(res, req, &request); err != nil {
		writeMalformed(res, h.logger, err)
		return
	}

	ctx, cancel := mutationContext(req)
	defer cancel()

	if err := h.vinService.Delete(ctx, request.ID, request.Type); err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, h.logger, http.StatusOK, models.Response{
		Success: true,
		Message: "Registro movido a la papelera",
	})
}

func (h *PostHandler) HandleRestore(res http.ResponseWriter, req *http.Request) {
	var request models.MutateRequest
	if err := decodeJSONBody(res, req, &request); err != nil {
		writeMalformed(res, h.logger, err)
		return
	}

	ctx, cancel := mutationContext(req)
	defer cancel()

	if err := h.vinService.Restore(ctx, request.ID, request.Type); err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, h.logger, http.StatusOK, models.Response{
		Success: true,
		Message: "Registro restaurado",
	})
}

func (h *PostHandler) HandleToggleRegistered(res http.ResponseWriter, req *http.Request) {
	var request models.MutateRequest
	if err := decodeJSONBody(res, req, &request); err != nil {
		writeMalformed(res, h.logger, err)
		return
	}

	ctx, cancel := mutationContext(req)
	defer cancel()

	rec, err := h.vinService.ToggleRegistered(ctx, request.ID, request.Type)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	message := "VIN marcado como registrado"
	if !rec.Registered {
		message = "VIN marcado como no registrado"
	}
	writeJSON(res, h.logger, http.StatusOK, models.Response{
		Success: true,
		Message: message,
		Data:    rec,
	})
}

// bulkHandler builds the shared request/response plumbing around one
// filtered bulk operation.
func (h *PostHandler) bulkHandler(op func(ctx context.Context, typ string, f models.Filter) (int64, error), verb string) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		var request models.BulkRequest
		if err := decodeJSONBody(res, req, &request); err != nil {
			writeMalformed(res, h.logger, err)
			return
		}

		ctx, cancel := context.WithTimeout(req.Context(), 30*time.Second)
		defer cancel()

		n, err := op(ctx, request.Type, bulkFilter(request))
		if err != nil {
			writeServiceError(res, h.logger, err)
			return
		}

		writeJSON(res, h.logger, http.StatusOK, models.Response{
			Success: true,
			Message: fmt.Sprintf("%d registros %s", n, verb),
		})
	}
}

func (h *PostHandler) HandleRegisterAll() http.HandlerFunc {
	return h.bulkHandler(h.vinService.RegisterAll, "registrados")
}

func (h *PostHandler) HandleUnregisterAll() http.HandlerFunc {
	return h.bulkHandler(h.vinService.UnregisterAll, "desmarcados")
}

func (h *PostHandler) HandleDeleteAll() http.HandlerFunc {
	return h.bulkHandler(h.vinService.DeleteAll, "movidos a la papelera")
}

func (h *PostHandler) HandleRestoreAll() http.HandlerFunc {
	return h.bulkHandler(func(ctx context.Context, typ string, _ models.Filter) (int64, error) {
		return h.vinService.RestoreAll(ctx, typ)
	}, "restaurados")
}

func (h *PostHandler) HandleEmptyTrash() http.HandlerFunc {
	return h.bulkHandler(func(ctx context.Context, typ string, _ models.Filter) (int64, error) {
		return h.vinService.EmptyTrash(ctx, typ)
	}, "eliminados definitivamente")
}

// HandleCheck is the read-only duplicate probe.
func (h *PostHandler) HandleCheck(res http.ResponseWriter, req *http.Request) {
	var request models.AddRequest
	if err := decodeJSONBody(res, req, &request); err != nil {
		writeMalformed(res, h.logger, err)
		return
	}

	ctx, cancel := mutationContext(req)
	defer cancel()

	check, err := h.vinService.Check(ctx, request.VIN, request.Type)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, h.logger, http.StatusOK, check)
}

// HandleImportText parses and reconciles a pasted batch without writing
// anything. The client confirms the preview through HandleImportCommit.
func (h *PostHandler) HandleImportText(res http.ResponseWriter, req *http.Request) {
	var request models.ImportTextRequest
	if err := decodeJSONBody(res, req, &request); err != nil {
		writeMalformed(res, h.logger, err)
		return
	}

	defaultCollection := request.Type
	if defaultCollection == "" || !models.ValidCollection(defaultCollection) {
		defaultCollection = models.CollectionDelivery
	}

	ctx, cancel := context.WithTimeout(req.Context(), 30*time.Second)
	defer cancel()

	lines := importer.Parse(request.Text, defaultCollection)
	preview := importer.Reconcile(ctx, h.vinService, lines)

	writeJSON(res, h.logger, http.StatusOK, models.Response{
		Success: true,
		Data:    preview,
	})
}

// HandleImportCommit executes a confirmed import preview.
func (h *PostHandler) HandleImportCommit(res http.ResponseWriter, req *http.Request) {
	var items []models.ImportItem
	if err := decodeJSONBody(res, req, &items); err != nil {
		writeMalformed(res, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), 60*time.Second)
	defer cancel()

	result := importer.Execute(ctx, h.vinService, items)
	h.logger.Info("import committed",
		zap.Int("added", result.Added), zap.Int("failed", result.Failed))

	writeJSON(res, h.logger, http.StatusOK, result)
}

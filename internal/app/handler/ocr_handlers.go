package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jmoralesv/vin-tracker/internal/models"
	"github.com/jmoralesv/vin-tracker/internal/worker"
)

// maxUploadBytes caps one multipart upload. Photos are resized before
// OCR anyway, so anything larger is a client mistake.
const maxUploadBytes = 20 << 20

// OCRHandler exposes the image import queue: uploads enqueue, the
// client polls status, and cards can be edited or removed while the
// queue drains.
type OCRHandler struct {
	queue  *worker.ImportWorker
	logger *zap.Logger
}

func NewOCR(q *worker.ImportWorker, l *zap.Logger) *OCRHandler {
	return &OCRHandler{
		queue:  q,
		logger: l,
	}
}

// HandleUpload accepts one or more images under the "images" field and
// enqueues them in file order.
func (h *OCRHandler) HandleUpload(res http.ResponseWriter, req *http.Request) {
	req.Body = http.MaxBytesReader(res, req.Body, maxUploadBytes)

	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(res, h.logger, http.StatusBadRequest, models.Response{Message: "No se pudieron leer las imágenes"})
		return
	}

	files := req.MultipartForm.File["images"]
	if len(files) == 0 {
		writeJSON(res, h.logger, http.StatusBadRequest, models.Response{Message: "No se recibió ninguna imagen"})
		return
	}

	ids := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			writeJSON(res, h.logger, http.StatusBadRequest, models.Response{Message: "No se pudo abrir " + fh.Filename})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeJSON(res, h.logger, http.StatusBadRequest, models.Response{Message: "No se pudo leer " + fh.Filename})
			return
		}
		ids = append(ids, h.queue.Enqueue(data))
	}

	h.logger.Info("images enqueued", zap.Int("count", len(ids)))
	writeJSON(res, h.logger, http.StatusAccepted, models.Response{
		Success: true,
		Data:    ids,
	})
}

// HandleStatus returns the state of every queued card, oldest first.
func (h *OCRHandler) HandleStatus(res http.ResponseWriter, req *http.Request) {
	writeJSON(res, h.logger, http.StatusOK, models.Response{
		Success: true,
		Data:    h.queue.Snapshot(),
	})
}

// HandleSetVIN applies a manual correction to one card.
func (h *OCRHandler) HandleSetVIN(res http.ResponseWriter, req *http.Request) {
	var request struct {
		VIN string `json:"vin"`
	}
	if err := decodeJSONBody(res, req, &request); err != nil {
		writeMalformed(res, h.logger, err)
		return
	}

	id := chi.URLParam(req, "id")
	if err := h.queue.SetVIN(id, request.VIN); err != nil {
		writeJSON(res, h.logger, http.StatusNotFound, models.Response{Message: "Imagen no encontrada"})
		return
	}
	writeJSON(res, h.logger, http.StatusOK, models.Response{Success: true})
}

// HandleRemove drops one card; a result arriving later is discarded.
func (h *OCRHandler) HandleRemove(res http.ResponseWriter, req *http.Request) {
	h.queue.Remove(chi.URLParam(req, "id"))
	writeJSON(res, h.logger, http.StatusOK, models.Response{Success: true})
}

func (h *OCRHandler) HandleRemoveAll(res http.ResponseWriter, req *http.Request) {
	h.queue.RemoveAll()
	writeJSON(res, h.logger, http.StatusOK, models.Response{Success: true})
}

// Package handler contains the HTTP handlers of the VIN tracker API:
// record mutations with the duplicate-conflict protocol, listings and
// export, the bulk text import flow and the OCR image queue endpoints.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jmoralesv/vin-tracker/internal/app/service"
	"github.com/jmoralesv/vin-tracker/internal/models"
	"github.com/jmoralesv/vin-tracker/internal/storage"
)

// malformedRequest represents an error with a malformed HTTP request.
type malformedRequest struct {
	status int    // HTTP status code for the error
	msg    string // Error message
}

// Error returns the error message for a malformed request.
func (mr *malformedRequest) Error() string {
	return mr.msg
}

// decodeJSONBody decodes a JSON request body into the given destination struct.
// It reads the content from the request body, checks for proper JSON formatting,
// and handles common errors related to JSON parsing.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	ct := r.Header.Get("Content-Type")
	if ct != "" {
		mediaType := strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))
		if mediaType != "application/json" {
			msg := "Content-Type header is not application/json"
			return &malformedRequest{status: http.StatusUnsupportedMediaType, msg: msg}
		}
	}

	// Limit the size of the request body to 1MB
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)

	// Decode the JSON body into the destination struct
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(&dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError

		switch {
		case errors.As(err, &syntaxError):
			msg := fmt.Sprintf("Request body contains badly-formed JSON (at position %d)", syntaxError.Offset)
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case errors.Is(err, io.ErrUnexpectedEOF):
			msg := "Request body contains badly-formed JSON"
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case errors.As(err, &unmarshalTypeError):
			msg := fmt.Sprintf("Request body contains an invalid value for the %q field (at position %d)", unmarshalTypeError.Field, unmarshalTypeError.Offset)
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			msg := fmt.Sprintf("Request body contains unknown field %s", fieldName)
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case errors.Is(err, io.EOF):
			msg := "Request body must not be empty"
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case err.Error() == "http: request body too large":
			msg := "Request body must not be larger than 1MB"
			return &malformedRequest{status: http.StatusRequestEntityTooLarge, msg: msg}

		default:
			return err
		}
	}

	// Ensure the body only contains a single JSON object
	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		msg := "Request body must only contain a single JSON object"
		return &malformedRequest{status: http.StatusBadRequest, msg: msg}
	}

	return nil
}

// writeJSON marshals v with the given status. Encoding failures after
// the header went out can only be logged.
func writeJSON(res http.ResponseWriter, logger *zap.Logger, status int, v interface{}) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	if err := json.NewEncoder(res).Encode(v); err != nil {
		logger.Error("response encode failed", zap.Error(err))
	}
}

// writeServiceError maps the service error taxonomy onto HTTP statuses:
// validation 400, missing record 404, duplicate VIN 409, anything else
// 500 with a generic body.
func writeServiceError(res http.ResponseWriter, logger *zap.Logger, err error) {
	var ve *service.ValidationError
	var ce *service.ConflictError

	switch {
	case errors.As(err, &ve):
		writeJSON(res, logger, http.StatusBadRequest, models.Response{Message: ve.Reason})

	case errors.As(err, &ce):
		conflict := models.ConflictResponse{
			IsDuplicate: true,
			Message:     ce.Message,
		}
		if ce.Existing != nil {
			conflict.IsNotRegistered = !ce.Existing.Registered
			conflict.ExistingID = ce.Existing.ID
			conflict.ExistingType = ce.Collection
			conflict.RepeatCount = ce.Existing.RepeatCount
			created := ce.Existing.CreatedAt
			conflict.CreatedAt = &created
		}
		writeJSON(res, logger, http.StatusConflict, conflict)

	case errors.Is(err, service.ErrDeliveryRepeat):
		writeJSON(res, logger, http.StatusBadRequest, models.Response{Message: err.Error()})

	case errors.Is(err, storage.ErrNotFound):
		writeJSON(res, logger, http.StatusNotFound, models.Response{Message: "Registro no encontrado"})

	case errors.Is(err, storage.ErrConflict):
		writeJSON(res, logger, http.StatusConflict, models.Response{Message: "Este VIN ya está en la base de datos"})

	default:
		logger.Error("request failed", zap.Error(err))
		writeJSON(res, logger, http.StatusInternalServerError, models.Response{Message: "Error interno del servidor"})
	}
}

func writeMalformed(res http.ResponseWriter, logger *zap.Logger, err error) {
	var mr *malformedRequest
	if errors.As(err, &mr) {
		http.Error(res, mr.msg, mr.status)
		return
	}
	logger.Error("body decode failed", zap.Error(err))
	http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

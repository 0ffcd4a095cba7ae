package service

import (
	"errors"
	"fmt"

	"github.com/jmoralesv/vin-tracker/internal/models"
)

// ErrNothingToExport is returned when no unregistered VIN matches the
// export filter in either collection.
var ErrNothingToExport = errors.New("No hay VINs sin registrar para exportar")

// ErrDeliveryRepeat rejects repeat-marking in the delivery workflow.
// Delivery VINs never repeat; the check lives here so a direct API call
// cannot bypass the policy.
var ErrDeliveryRepeat = errors.New("Los VINs de Delivery no se repiten")

// ValidationError is a synchronous input rejection, reported before any
// store access and never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ConflictError carries the existing record behind a duplicate VIN so
// the handler can build the decision payload the client branches on.
type ConflictError struct {
	Existing   *models.VinRecord
	Collection string
	Message    string
}

func (e *ConflictError) Error() string {
	return e.Message
}

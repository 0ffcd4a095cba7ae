package importer

import (
	"context"
	"fmt"

	"github.com/jmoralesv/vin-tracker/internal/models"
	"github.com/jmoralesv/vin-tracker/internal/vin"
)

// Checker is the read-only duplicate probe the reconciliation pass runs
// per candidate. Implemented by the VIN service.
type Checker interface {
	Check(ctx context.Context, vinValue, collection string) (models.CheckResponse, error)
}

// Adder executes confirmed additions. Implemented by the VIN service.
type Adder interface {
	AddForImport(ctx context.Context, vinValue, collection string) error
	AddRepeated(ctx context.Context, vinValue, collection string) (*models.VinRecord, error)
}

// Reconcile classifies parsed lines against the live store without
// writing anything. In-batch duplicates are keyed per collection; the
// same VIN under delivery and service is two distinct candidates.
func Reconcile(ctx context.Context, checker Checker, lines []Line) models.ImportPreview {
	preview := models.ImportPreview{
		ToAdd:            []models.ImportItem{},
		Omitted:          []models.ImportItem{},
		DuplicatesInFile: []models.ImportItem{},
		Errors:           []models.ImportItem{},
	}
	seen := make(map[string]bool)

	for _, line := range lines {
		item := models.ImportItem{VIN: line.VIN, Line: line.Number, Type: line.Collection}

		if !vin.ValidLength(line.VIN) {
			item.Reason = fmt.Sprintf("Longitud inválida (%d caracteres, se requieren 17)", len(line.VIN))
			preview.Errors = append(preview.Errors, item)
			continue
		}

		key := line.Collection + ":" + line.VIN
		if seen[key] {
			item.Reason = "Duplicado en el archivo"
			preview.DuplicatesInFile = append(preview.DuplicatesInFile, item)
			continue
		}
		seen[key] = true

		check, err := checker.Check(ctx, line.VIN, line.Collection)
		if err != nil {
			item.Reason = "Error al verificar: " + err.Error()
			preview.Errors = append(preview.Errors, item)
			continue
		}

		switch {
		case !check.Exists:
			item.IsNew = true
			preview.ToAdd = append(preview.ToAdd, item)
		case check.IsNotRegistered:
			item.Reason = "Ya existe pero no está registrado"
			preview.Omitted = append(preview.Omitted, item)
		case line.Collection == models.CollectionDelivery:
			item.Reason = "Ya existe y está registrado (Delivery no se repite)"
			preview.Omitted = append(preview.Omitted, item)
		default:
			item.IsRepeated = true
			item.ExistingID = check.ExistingID
			preview.ToAdd = append(preview.ToAdd, item)
		}
	}
	return preview
}

// Execute writes the confirmed items sequentially. One failing insert
// does not abort the batch; the aggregate counts tell the caller how it
// went.
func Execute(ctx context.Context, adder Adder, items []models.ImportItem) models.ImportResult {
	result := models.ImportResult{Success: true}

	for _, item := range items {
		var err error
		if item.IsRepeated {
			_, err = adder.AddRepeated(ctx, item.VIN, item.Type)
		} else {
			err = adder.AddForImport(ctx, item.VIN, item.Type)
		}
		if err != nil {
			result.Failed++
			continue
		}
		result.Added++
	}

	result.Success = result.Failed == 0
	return result
}

// Package service orchestrates the VIN workflows over the record store:
// the add path with its duplicate policy, repeat-marking, bulk filtered
// operations, the trash lifecycle, export and the verification report.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jmoralesv/vin-tracker/internal/cache"
	"github.com/jmoralesv/vin-tracker/internal/models"
	"github.com/jmoralesv/vin-tracker/internal/storage"
	"github.com/jmoralesv/vin-tracker/internal/vin"
)

type VinService struct {
	store   storage.Store
	listing *cache.Cache
	logger  *zap.Logger
}

func NewVinService(store storage.Store, logger *zap.Logger) *VinService {
	return &VinService{
		store:   store,
		listing: cache.New(cache.DefaultTTL),
		logger:  logger,
	}
}

// collections resolves a request type into the concrete collections it
// touches. "all" fans out to both.
func collections(typ string) ([]string, error) {
	switch typ {
	case models.CollectionAll, "":
		return []string{models.CollectionDelivery, models.CollectionService}, nil
	case models.CollectionDelivery, models.CollectionService:
		return []string{typ}, nil
	}
	return nil, validationf("Tipo de servicio no válido: %s", typ)
}

func (s *VinService) invalidate() {
	s.listing.InvalidateAll()
}

// normalizeInput trims and canonicalizes a raw VIN, rejecting empties.
func normalizeInput(raw string) (string, error) {
	v := vin.Normalize(strings.TrimSpace(raw))
	if v == "" {
		return "", validationf("VIN no puede estar vacío")
	}
	return v, nil
}

// Add inserts a VIN into one collection, applying the duplicate policy.
// A duplicate surfaces as *ConflictError so the caller can branch into
// the repeat-confirmation flow instead of treating it as a hard failure.
func (s *VinService) Add(ctx context.Context, rawVIN, collection string) (*models.VinRecord, error) {
	if !models.ValidCollection(collection) {
		return nil, validationf("Tipo de servicio no válido: %s", collection)
	}

	v, err := normalizeInput(rawVIN)
	if err != nil {
		return nil, err
	}
	if len(v) != vin.Length {
		return nil, validationf("El VIN debe tener exactamente 17 caracteres (tiene %d)", len(v))
	}

	existing, err := s.store.FindByVIN(ctx, collection, v)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	switch vin.Classify(existing, collection) {
	case vin.DecisionAdd:
		rec, err := s.store.Insert(ctx, collection, v)
		if errors.Is(err, storage.ErrConflict) {
			// Lost the check-then-insert race; surfaced generically.
			return nil, err
		}
		if err != nil {
			return nil, err
		}
		s.invalidate()
		s.logger.Info("vin added",
			zap.String("collection", collection), zap.Int64("id", rec.ID))
		return rec, nil

	case vin.DecisionOmitNotRegistered:
		return nil, &ConflictError{
			Existing:   existing,
			Collection: collection,
			Message:    "Este VIN ya está en la base de datos pero NO está registrado todavía",
		}

	default:
		// Registered duplicate: delivery omits, service may repeat. Both
		// are the same decision point for the caller.
		return nil, &ConflictError{
			Existing:   existing,
			Collection: collection,
			Message:    fmt.Sprintf("Este VIN ya existe en %s (ID: %d)", collection, existing.ID),
		}
	}
}

// AddForImport adapts Add for the batch importer, which only needs the
// error.
func (s *VinService) AddForImport(ctx context.Context, rawVIN, collection string) error {
	_, err := s.Add(ctx, rawVIN, collection)
	return err
}

// AddRepeated marks an existing registered service VIN as repeated:
// repeat_count goes up, registered resets, last_repeated_at is stamped.
// Delivery is rejected by policy even when called directly.
func (s *VinService) AddRepeated(ctx context.Context, rawVIN, collection string) (*models.VinRecord, error) {
	if !models.ValidCollection(collection) {
		return nil, validationf("Tipo de servicio no válido: %s", collection)
	}
	if collection == models.CollectionDelivery {
		return nil, ErrDeliveryRepeat
	}

	v, err := normalizeInput(rawVIN)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.FindByVIN(ctx, collection, v)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("VIN no encontrado en %s. Usa la función agregar normal: %w", collection, storage.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rec, err := s.store.MarkRepeated(ctx, collection, existing.ID)
	if err != nil {
		return nil, err
	}
	s.invalidate()
	s.logger.Info("vin marked repeated",
		zap.String("collection", collection), zap.Int64("id", rec.ID),
		zap.Int("repeat_count", rec.RepeatCount))
	return rec, nil
}

// Update replaces the VIN text of a record.
func (s *VinService) Update(ctx context.Context, id int64, rawVIN, collection string) (*models.VinRecord, error) {
	if !models.ValidCollection(collection) {
		return nil, validationf("Tipo de servicio no válido: %s", collection)
	}

	v, err := normalizeInput(rawVIN)
	if err != nil {
		return nil, err
	}
	if len(v) != vin.Length {
		return nil, validationf("El VIN debe tener exactamente 17 caracteres (tiene %d)", len(v))
	}

	rec, err := s.store.UpdateVIN(ctx, collection, id, v)
	if errors.Is(err, storage.ErrConflict) {
		return nil, &ConflictError{
			Collection: collection,
			Message:    fmt.Sprintf("Este VIN ya existe en otro registro de %s", collection),
		}
	}
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return rec, nil
}

// Delete soft-deletes one record; it stays restorable from the trash.
func (s *VinService) Delete(ctx context.Context, id int64, collection string) error {
	if !models.ValidCollection(collection) {
		return validationf("Tipo de servicio no válido: %s", collection)
	}
	if err := s.store.SoftDelete(ctx, collection, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *VinService) Restore(ctx context.Context, id int64, collection string) error {
	if !models.ValidCollection(collection) {
		return validationf("Tipo de servicio no válido: %s", collection)
	}
	if err := s.store.Restore(ctx, collection, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// ToggleRegistered flips the registered flag and returns the new state.
func (s *VinService) ToggleRegistered(ctx context.Context, id int64, collection string) (*models.VinRecord, error) {
	if !models.ValidCollection(collection) {
		return nil, validationf("Tipo de servicio no válido: %s", collection)
	}

	current, err := s.store.FindByID(ctx, collection, id)
	if err != nil {
		return nil, err
	}

	rec, err := s.store.SetRegistered(ctx, collection, id, !current.Registered)
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return rec, nil
}

// GetRecords returns both collection listings for the filter, cached
// for a short TTL keyed by the filter set.
func (s *VinService) GetRecords(ctx context.Context, typ string, filter models.Filter) (*models.RecordsResponse, error) {
	key := fmt.Sprintf("%s|%s|%s|%s|%s", typ, filter.Date, filter.Registered, filter.Search, filter.Repeated)
	if cached, ok := s.listing.Get(key); ok {
		return cached.(*models.RecordsResponse), nil
	}

	resp := &models.RecordsResponse{Success: true, Delivery: []models.VinRecord{}, Service: []models.VinRecord{}}

	targets, err := collections(typ)
	if err != nil {
		return nil, err
	}
	for _, collection := range targets {
		records, err := s.store.List(ctx, collection, filter)
		if err != nil {
			return nil, err
		}
		for i := range records {
			records[i].Counter = i + 1
			records[i].Type = collection
		}
		if collection == models.CollectionDelivery {
			resp.Delivery = records
		} else {
			resp.Service = records
		}
	}

	s.listing.Set(key, resp)
	return resp, nil
}

// Trash lists soft-deleted records for the requested type.
func (s *VinService) Trash(ctx context.Context, typ string) (*models.RecordsResponse, error) {
	resp := &models.RecordsResponse{Success: true, Delivery: []models.VinRecord{}, Service: []models.VinRecord{}}

	targets, err := collections(typ)
	if err != nil {
		return nil, err
	}
	for _, collection := range targets {
		records, err := s.store.ListDeleted(ctx, collection)
		if err != nil {
			return nil, err
		}
		for i := range records {
			records[i].Counter = i + 1
			records[i].Type = collection
		}
		if collection == models.CollectionDelivery {
			resp.Delivery = records
		} else {
			resp.Service = records
		}
	}
	return resp, nil
}

// bulk runs one per-collection operation over the resolved targets and
// sums the affected counts. Each collection is all-or-nothing on its
// own; a failure in the second does not roll back the first.
func (s *VinService) bulk(typ string, op func(collection string) (int64, error)) (int64, error) {
	targets, err := collections(typ)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, collection := range targets {
		n, err := op(collection)
		if err != nil {
			return total, err
		}
		total += n
	}
	s.invalidate()
	return total, nil
}

func (s *VinService) RegisterAll(ctx context.Context, typ string, filter models.Filter) (int64, error) {
	return s.bulk(typ, func(c string) (int64, error) {
		return s.store.RegisterAll(ctx, c, true, filter)
	})
}

func (s *VinService) UnregisterAll(ctx context.Context, typ string, filter models.Filter) (int64, error) {
	return s.bulk(typ, func(c string) (int64, error) {
		return s.store.RegisterAll(ctx, c, false, filter)
	})
}

func (s *VinService) DeleteAll(ctx context.Context, typ string, filter models.Filter) (int64, error) {
	return s.bulk(typ, func(c string) (int64, error) {
		return s.store.DeleteAll(ctx, c, filter)
	})
}

func (s *VinService) RestoreAll(ctx context.Context, typ string) (int64, error) {
	return s.bulk(typ, func(c string) (int64, error) {
		return s.store.RestoreAll(ctx, c)
	})
}

// EmptyTrash purges soft-deleted records for good.
func (s *VinService) EmptyTrash(ctx context.Context, typ string) (int64, error) {
	return s.bulk(typ, func(c string) (int64, error) {
		return s.store.EmptyTrash(ctx, c)
	})
}

// Check is the read-only duplicate probe behind import reconciliation.
func (s *VinService) Check(ctx context.Context, rawVIN, collection string) (models.CheckResponse, error) {
	if !models.ValidCollection(collection) {
		return models.CheckResponse{}, validationf("Tipo de servicio no válido: %s", collection)
	}

	v, err := normalizeInput(rawVIN)
	if err != nil {
		return models.CheckResponse{}, err
	}

	existing, err := s.store.FindByVIN(ctx, collection, v)
	if errors.Is(err, storage.ErrNotFound) {
		return models.CheckResponse{Success: true}, nil
	}
	if err != nil {
		return models.CheckResponse{}, err
	}

	return models.CheckResponse{
		Success:         true,
		Exists:          true,
		IsNotRegistered: !existing.Registered,
		ExistingID:      existing.ID,
		RepeatCount:     existing.RepeatCount,
	}, nil
}

// Verification reports intra-collection duplicate VINs and VINs present
// in both collections at once.
func (s *VinService) Verification(ctx context.Context) (*models.VerificationResponse, error) {
	resp := &models.VerificationResponse{
		Success:            true,
		DeliveryDuplicates: []models.Duplicate{},
		ServiceDuplicates:  []models.Duplicate{},
		CrossCollection:    []string{},
	}

	var err error
	if resp.DeliveryDuplicates, err = s.store.Duplicates(ctx, models.CollectionDelivery); err != nil {
		return nil, err
	}
	if resp.ServiceDuplicates, err = s.store.Duplicates(ctx, models.CollectionService); err != nil {
		return nil, err
	}

	delivery, err := s.store.List(ctx, models.CollectionDelivery, models.Filter{})
	if err != nil {
		return nil, err
	}
	servicing, err := s.store.List(ctx, models.CollectionService, models.Filter{})
	if err != nil {
		return nil, err
	}

	inDelivery := make(map[string]bool, len(delivery))
	for _, r := range delivery {
		inDelivery[r.VIN] = true
	}
	for _, r := range servicing {
		if inDelivery[r.VIN] {
			resp.CrossCollection = append(resp.CrossCollection, r.VIN)
			inDelivery[r.VIN] = false // report each VIN once
		}
	}
	return resp, nil
}

// Ping reports store connectivity for the standing health signal.
func (s *VinService) Ping(ctx context.Context) error {
	return s.store.PingContext(ctx)
}

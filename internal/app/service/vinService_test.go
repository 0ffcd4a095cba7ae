package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jmoralesv/vin-tracker/internal/models"
	"github.com/jmoralesv/vin-tracker/internal/storage"
)

func newTestService(t *testing.T) *VinService {
	t.Helper()
	store, err := storage.CreateMemoryStorage()
	require.NoError(t, err)
	return NewVinService(store, zap.NewNop())
}

const (
	vinA = "1HGCM82633A004352"
	vinB = "5YJSA1E26MF000001"
)

func TestAdd(t *testing.T) {
	s := newTestService(t)

	rec, err := s.Add(context.Background(), "1hgcm82633aoo4352", models.CollectionDelivery)
	require.NoError(t, err)
	assert.Equal(t, vinA, rec.VIN)
	assert.Equal(t, 17, rec.CharCount)
	assert.False(t, rec.Registered)
	assert.Equal(t, 0, rec.RepeatCount)
}

func TestAdd_Validation(t *testing.T) {
	s := newTestService(t)

	_, err := s.Add(context.Background(), "   ", models.CollectionDelivery)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "VIN no puede estar vacío", ve.Reason)

	_, err = s.Add(context.Background(), "ABC123", models.CollectionDelivery)
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Reason, "17 caracteres")
	assert.Contains(t, ve.Reason, "tiene 6")

	_, err = s.Add(context.Background(), vinA, "garbage")
	require.ErrorAs(t, err, &ve)
}

func TestAdd_DuplicateUnregistered(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	first, err := s.Add(ctx, vinA, models.CollectionService)
	require.NoError(t, err)

	_, err = s.Add(ctx, vinA, models.CollectionService)
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, first.ID, ce.Existing.ID)
	assert.False(t, ce.Existing.Registered)
	assert.Contains(t, ce.Message, "NO está registrado")
}

func TestAdd_DuplicateRegistered(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	rec, err := s.Add(ctx, vinA, models.CollectionService)
	require.NoError(t, err)
	_, err = s.ToggleRegistered(ctx, rec.ID, models.CollectionService)
	require.NoError(t, err)

	_, err = s.Add(ctx, vinA, models.CollectionService)
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.True(t, ce.Existing.Registered)
	assert.Contains(t, ce.Message, "ya existe en service")
}

func TestAdd_IndependentCollections(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.Add(ctx, vinA, models.CollectionDelivery)
	require.NoError(t, err)

	// The same VIN is fine in the other collection.
	_, err = s.Add(ctx, vinA, models.CollectionService)
	assert.NoError(t, err)
}

func TestAddRepeated(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	rec, err := s.Add(ctx, vinA, models.CollectionService)
	require.NoError(t, err)
	_, err = s.ToggleRegistered(ctx, rec.ID, models.CollectionService)
	require.NoError(t, err)

	repeated, err := s.AddRepeated(ctx, vinA, models.CollectionService)
	require.NoError(t, err)
	assert.Equal(t, 1, repeated.RepeatCount)
	assert.False(t, repeated.Registered)
	require.NotNil(t, repeated.LastRepeatedAt)

	// The record became repeat-eligible again only after re-registering.
	_, err = s.Add(ctx, vinA, models.CollectionService)
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.False(t, ce.Existing.Registered)
}

func TestAddRepeated_DeliveryRejected(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	rec, err := s.Add(ctx, vinA, models.CollectionDelivery)
	require.NoError(t, err)
	_, err = s.ToggleRegistered(ctx, rec.ID, models.CollectionDelivery)
	require.NoError(t, err)

	_, err = s.AddRepeated(ctx, vinA, models.CollectionDelivery)
	assert.ErrorIs(t, err, ErrDeliveryRepeat)
}

func TestAddRepeated_UnknownVin(t *testing.T) {
	s := newTestService(t)

	_, err := s.AddRepeated(context.Background(), vinA, models.CollectionService)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	rec, err := s.Add(ctx, vinA, models.CollectionDelivery)
	require.NoError(t, err)

	updated, err := s.Update(ctx, rec.ID, strings.ToLower(vinB), models.CollectionDelivery)
	require.NoError(t, err)
	assert.Equal(t, vinB, updated.VIN)

	_, err = s.Add(ctx, vinA, models.CollectionDelivery)
	assert.NoError(t, err, "old value is free again")
}

func TestUpdate_Collision(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.Add(ctx, vinA, models.CollectionDelivery)
	require.NoError(t, err)
	rec, err := s.Add(ctx, vinB, models.CollectionDelivery)
	require.NoError(t, err)

	_, err = s.Update(ctx, rec.ID, vinA, models.CollectionDelivery)
	var ce *ConflictError
	assert.ErrorAs(t, err, &ce)
}

func TestDeleteRestoreLifecycle(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	rec, err := s.Add(ctx, vinA, models.CollectionService)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, rec.ID, models.CollectionService))

	// Deleted records no longer occupy the VIN.
	other, err := s.Add(ctx, vinA, models.CollectionService)
	require.NoError(t, err)

	trash, err := s.Trash(ctx, models.CollectionService)
	require.NoError(t, err)
	require.Len(t, trash.Service, 1)
	assert.Equal(t, rec.ID, trash.Service[0].ID)

	// Restoring would collide with the live duplicate; remove it first.
	require.NoError(t, s.Delete(ctx, other.ID, models.CollectionService))
	require.NoError(t, s.Restore(ctx, rec.ID, models.CollectionService))

	n, err := s.EmptyTrash(ctx, models.CollectionAll)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestGetRecords(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.Add(ctx, vinA, models.CollectionDelivery)
	require.NoError(t, err)
	_, err = s.Add(ctx, vinB, models.CollectionDelivery)
	require.NoError(t, err)
	_, err = s.Add(ctx, vinA, models.CollectionService)
	require.NoError(t, err)

	resp, err := s.GetRecords(ctx, models.CollectionAll, models.Filter{})
	require.NoError(t, err)
	require.Len(t, resp.Delivery, 2)
	require.Len(t, resp.Service, 1)

	assert.Equal(t, 1, resp.Delivery[0].Counter)
	assert.Equal(t, 2, resp.Delivery[1].Counter)
	assert.Equal(t, models.CollectionDelivery, resp.Delivery[0].Type)
	assert.Equal(t, models.CollectionService, resp.Service[0].Type)
}

func TestGetRecords_CacheInvalidation(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	resp, err := s.GetRecords(ctx, models.CollectionAll, models.Filter{})
	require.NoError(t, err)
	assert.Empty(t, resp.Delivery)

	_, err = s.Add(ctx, vinA, models.CollectionDelivery)
	require.NoError(t, err)

	resp, err = s.GetRecords(ctx, models.CollectionAll, models.Filter{})
	require.NoError(t, err)
	assert.Len(t, resp.Delivery, 1, "mutation must drop the cached listing")
}

func TestGetRecords_Filter(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	rec, err := s.Add(ctx, vinA, models.CollectionDelivery)
	require.NoError(t, err)
	_, err = s.Add(ctx, vinB, models.CollectionDelivery)
	require.NoError(t, err)
	_, err = s.ToggleRegistered(ctx, rec.ID, models.CollectionDelivery)
	require.NoError(t, err)

	resp, err := s.GetRecords(ctx, models.CollectionDelivery, models.Filter{Registered: models.FilterRegistered})
	require.NoError(t, err)
	require.Len(t, resp.Delivery, 1)
	assert.Equal(t, vinA, resp.Delivery[0].VIN)
}

func TestBulkOperations(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.Add(ctx, vinA, models.CollectionDelivery)
	require.NoError(t, err)
	_, err = s.Add(ctx, vinB, models.CollectionDelivery)
	require.NoError(t, err)
	_, err = s.Add(ctx, vinA, models.CollectionService)
	require.NoError(t, err)

	n, err := s.RegisterAll(ctx, models.CollectionAll, models.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	// Already registered rows are not counted twice.
	n, err = s.RegisterAll(ctx, models.CollectionAll, models.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = s.UnregisterAll(ctx, models.CollectionDelivery, models.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = s.DeleteAll(ctx, models.CollectionAll, models.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = s.RestoreAll(ctx, models.CollectionAll)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestBulk_InvalidType(t *testing.T) {
	s := newTestService(t)

	_, err := s.RegisterAll(context.Background(), "everything", models.Filter{})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestCheck(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	check, err := s.Check(ctx, vinA, models.CollectionService)
	require.NoError(t, err)
	assert.False(t, check.Exists)

	rec, err := s.Add(ctx, vinA, models.CollectionService)
	require.NoError(t, err)

	check, err = s.Check(ctx, vinA, models.CollectionService)
	require.NoError(t, err)
	assert.True(t, check.Exists)
	assert.True(t, check.IsNotRegistered)
	assert.Equal(t, rec.ID, check.ExistingID)

	_, err = s.ToggleRegistered(ctx, rec.ID, models.CollectionService)
	require.NoError(t, err)

	check, err = s.Check(ctx, vinA, models.CollectionService)
	require.NoError(t, err)
	assert.True(t, check.Exists)
	assert.False(t, check.IsNotRegistered)
}

func TestVerification(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.Add(ctx, vinA, models.CollectionDelivery)
	require.NoError(t, err)
	_, err = s.Add(ctx, vinA, models.CollectionService)
	require.NoError(t, err)
	_, err = s.Add(ctx, vinB, models.CollectionService)
	require.NoError(t, err)

	resp, err := s.Verification(ctx)
	require.NoError(t, err)
	assert.Empty(t, resp.DeliveryDuplicates)
	assert.Empty(t, resp.ServiceDuplicates)
	assert.Equal(t, []string{vinA}, resp.CrossCollection)
}

func TestExport(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.Add(ctx, vinA, models.CollectionDelivery)
	require.NoError(t, err)
	svc, err := s.Add(ctx, vinB, models.CollectionService)
	require.NoError(t, err)
	_, err = s.ToggleRegistered(ctx, svc.ID, models.CollectionService)
	require.NoError(t, err)
	repeated, err := s.AddRepeated(ctx, vinB, models.CollectionService)
	require.NoError(t, err)

	out, err := s.Export(ctx, models.CollectionAll, models.Filter{})
	require.NoError(t, err)

	assert.Contains(t, out, "Deliverys\n"+vinA)
	assert.Contains(t, out, "Services\n"+vinB+" - Última repetición: "+repeated.LastRepeatedAt.Format(exportTimeLayout))
}

func TestExport_RegisteredExcluded(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	rec, err := s.Add(ctx, vinA, models.CollectionDelivery)
	require.NoError(t, err)
	_, err = s.ToggleRegistered(ctx, rec.ID, models.CollectionDelivery)
	require.NoError(t, err)

	_, err = s.Export(ctx, models.CollectionAll, models.Filter{})
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestExport_Empty(t *testing.T) {
	s := newTestService(t)

	_, err := s.Export(context.Background(), models.CollectionAll, models.Filter{})
	assert.ErrorIs(t, err, ErrNothingToExport)
	assert.False(t, errors.Is(err, storage.ErrNotFound))
}

func TestPing(t *testing.T) {
	s := newTestService(t)
	assert.NoError(t, s.Ping(context.Background()))
}

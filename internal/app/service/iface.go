package service

import (
	"context"

	"github.com/jmoralesv/vin-tracker/internal/models"
)

// VinServiceIface is the service surface the HTTP handlers depend on.
// *VinService is the only production implementation; tests substitute a
// generated mock.
type VinServiceIface interface {
	Add(ctx context.Context, rawVIN, collection string) (*models.VinRecord, error)
	AddForImport(ctx context.Context, rawVIN, collection string) error
	AddRepeated(ctx context.Context, rawVIN, collection string) (*models.VinRecord, error)
	Update(ctx context.Context, id int64, rawVIN, collection string) (*models.VinRecord, error)
	Delete(ctx context.Context, id int64, collection string) error
	Restore(ctx context.Context, id int64, collection string) error
	ToggleRegistered(ctx context.Context, id int64, collection string) (*models.VinRecord, error)
	GetRecords(ctx context.Context, typ string, filter models.Filter) (*models.RecordsResponse, error)
	Trash(ctx context.Context, typ string) (*models.RecordsResponse, error)
	RegisterAll(ctx context.Context, typ string, filter models.Filter) (int64, error)
	UnregisterAll(ctx context.Context, typ string, filter models.Filter) (int64, error)
	DeleteAll(ctx context.Context, typ string, filter models.Filter) (int64, error)
	RestoreAll(ctx context.Context, typ string) (int64, error)
	EmptyTrash(ctx context.Context, typ string) (int64, error)
	Check(ctx context.Context, rawVIN, collection string) (models.CheckResponse, error)
	Verification(ctx context.Context) (*models.VerificationResponse, error)
	Export(ctx context.Context, typ string, filter models.Filter) (string, error)
	Ping(ctx context.Context) error
}

var _ VinServiceIface = (*VinService)(nil)

package storage

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jmoralesv/vin-tracker/internal/models"
)

// MemoryStorage keeps both collections in maps guarded by one mutex.
// Used when neither a database DSN nor a sqlite path is configured, and
// as the store double in service and handler tests.
type MemoryStorage struct {
	mu      sync.Mutex
	records map[string]map[int64]*models.VinRecord
	nextID  map[string]int64
}

func CreateMemoryStorage() (*MemoryStorage, error) {
	return &MemoryStorage{
		records: map[string]map[int64]*models.VinRecord{
			models.CollectionDelivery: {},
			models.CollectionService:  {},
		},
		nextID: map[string]int64{
			models.CollectionDelivery: 1,
			models.CollectionService:  1,
		},
	}, nil
}

func (m *MemoryStorage) collection(name string) (map[int64]*models.VinRecord, error) {
	c, ok := m.records[name]
	if !ok {
		return nil, errors.New("unknown collection: " + name)
	}
	return c, nil
}

func (m *MemoryStorage) Insert(ctx context.Context, collection, vin string) (*models.VinRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.collection(collection)
	if err != nil {
		return nil, err
	}

	for _, r := range c {
		if !r.Deleted && r.VIN == vin {
			return nil, ErrConflict
		}
	}

	id := m.nextID[collection]
	m.nextID[collection] = id + 1

	rec := &models.VinRecord{
		ID:        id,
		VIN:       vin,
		CharCount: len(vin),
		CreatedAt: time.Now(),
	}
	c[id] = rec

	out := *rec
	return &out, nil
}

func (m *MemoryStorage) FindByID(ctx context.Context, collection string, id int64) (*models.VinRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.collection(collection)
	if err != nil {
		return nil, err
	}

	r, ok := c[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *r
	return &out, nil
}

func (m *MemoryStorage) FindByVIN(ctx context.Context, collection, vin string) (*models.VinRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.collection(collection)
	if err != nil {
		return nil, err
	}

	for _, r := range c {
		if !r.Deleted && r.VIN == vin {
			out := *r
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStorage) UpdateVIN(ctx context.Context, collection string, id int64, vin string) (*models.VinRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.collection(collection)
	if err != nil {
		return nil, err
	}

	r, ok := c[id]
	if !ok {
		return nil, ErrNotFound
	}

	for _, other := range c {
		if other.ID != id && !other.Deleted && other.VIN == vin {
			return nil, ErrConflict
		}
	}

	r.VIN = vin
	r.CharCount = len(vin)
	out := *r
	return &out, nil
}

func (m *MemoryStorage) SetRegistered(ctx context.Context, collection string, id int64, registered bool) (*models.VinRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.collection(collection)
	if err != nil {
		return nil, err
	}

	r, ok := c[id]
	if !ok {
		return nil, ErrNotFound
	}

	r.Registered = registered
	out := *r
	return &out, nil
}

func (m *MemoryStorage) MarkRepeated(ctx context.Context, collection string, id int64) (*models.VinRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.collection(collection)
	if err != nil {
		return nil, err
	}

	r, ok := c[id]
	if !ok {
		return nil, ErrNotFound
	}

	now := time.Now()
	r.RepeatCount++
	r.Registered = false
	r.LastRepeatedAt = &now
	out := *r
	return &out, nil
}

func (m *MemoryStorage) SoftDelete(ctx context.Context, collection string, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.collection(collection)
	if err != nil {
		return err
	}

	r, ok := c[id]
	if !ok || r.Deleted {
		return ErrNotFound
	}

	now := time.Now()
	r.Deleted = true
	r.DeletedAt = &now
	return nil
}

func (m *MemoryStorage) Restore(ctx context.Context, collection string, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.collection(collection)
	if err != nil {
		return err
	}

	r, ok := c[id]
	if !ok || !r.Deleted {
		return ErrNotFound
	}

	r.Deleted = false
	r.DeletedAt = nil
	return nil
}

func (m *MemoryStorage) List(ctx context.Context, collection string, filter models.Filter) ([]models.VinRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.collection(collection)
	if err != nil {
		return nil, err
	}

	out := make([]models.VinRecord, 0)
	for _, r := range c {
		if r.Deleted || !matches(r, filter) {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStorage) ListDeleted(ctx context.Context, collection string) ([]models.VinRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.collection(collection)
	if err != nil {
		return nil, err
	}

	out := make([]models.VinRecord, 0)
	for _, r := range c {
		if r.Deleted {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStorage) RegisterAll(ctx context.Context, collection string, registered bool, filter models.Filter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.collection(collection)
	if err != nil {
		return 0, err
	}

	var affected int64
	for _, r := range c {
		if r.Deleted || !matches(r, filter) || r.Registered == registered {
			continue
		}
		r.Registered = registered
		affected++
	}
	return affected, nil
}

func (m *MemoryStorage) DeleteAll(ctx context.Context, collection string, filter models.Filter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.collection(collection)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	var affected int64
	for _, r := range c {
		if r.Deleted || !matches(r, filter) {
			continue
		}
		r.Deleted = true
		r.DeletedAt = &now
		affected++
	}
	return affected, nil
}

func (m *MemoryStorage) RestoreAll(ctx context.Context, collection string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.collection(collection)
	if err != nil {
		return 0, err
	}

	var affected int64
	for _, r := range c {
		if !r.Deleted {
			continue
		}
		r.Deleted = false
		r.DeletedAt = nil
		affected++
	}
	return affected, nil
}

func (m *MemoryStorage) EmptyTrash(ctx context.Context, collection string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.collection(collection)
	if err != nil {
		return 0, err
	}

	var affected int64
	for id, r := range c {
		if r.Deleted {
			delete(c, id)
			affected++
		}
	}
	return affected, nil
}

func (m *MemoryStorage) Duplicates(ctx context.Context, collection string) ([]models.Duplicate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.collection(collection)
	if err != nil {
		return nil, err
	}

	byVIN := make(map[string][]int64)
	for _, r := range c {
		if !r.Deleted {
			byVIN[r.VIN] = append(byVIN[r.VIN], r.ID)
		}
	}

	out := make([]models.Duplicate, 0)
	for v, ids := range byVIN {
		if len(ids) < 2 {
			continue
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		out = append(out, models.Duplicate{VIN: v, IDs: ids, Count: len(ids)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VIN < out[j].VIN })
	return out, nil
}

func (m *MemoryStorage) PingContext(ctx context.Context) error {
	return nil
}

func matches(r *models.VinRecord, f models.Filter) bool {
	if f.Date != "" && r.CreatedAt.Format("2006-01-02") != f.Date {
		return false
	}
	switch f.Registered {
	case models.FilterRegistered:
		if !r.Registered {
			return false
		}
	case models.FilterNotRegistered:
		if r.Registered {
			return false
		}
	}
	switch f.Repeated {
	case models.FilterRepeated:
		if r.RepeatCount == 0 {
			return false
		}
	case models.FilterNotRepeated:
		if r.RepeatCount > 0 {
			return false
		}
	}
	if f.Search != "" && !strings.Contains(r.VIN, strings.ToUpper(f.Search)) {
		return false
	}
	return true
}

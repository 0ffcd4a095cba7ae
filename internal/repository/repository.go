// Package repository implements the record store on database/sql for
// postgres (pgx stdlib driver) and sqlite (modernc, pure Go). Both
// dialects accept $N placeholders and RETURNING, so one implementation
// serves both; only schema DDL and unique-violation detection differ.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/jmoralesv/vin-tracker/internal/models"
	"github.com/jmoralesv/vin-tracker/internal/storage"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

const recordColumns = "id, vin, char_count, registered, repeat_count, last_repeated_at, created_at, deleted, deleted_at"

// InitPostgres opens and pings a postgres connection and ensures both
// record tables exist. The unique index is partial: deleted rows do not
// occupy the VIN slot.
func InitPostgres(dsn string, log *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	for _, table := range []string{"delivery_records", "service_records"} {
		ddl := fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %[1]s (
				id BIGSERIAL PRIMARY KEY,
				vin TEXT NOT NULL,
				char_count INT NOT NULL,
				registered BOOLEAN NOT NULL DEFAULT FALSE,
				repeat_count INT NOT NULL DEFAULT 0,
				last_repeated_at TIMESTAMPTZ,
				created_at TIMESTAMPTZ NOT NULL,
				deleted BOOLEAN NOT NULL DEFAULT FALSE,
				deleted_at TIMESTAMPTZ
			);
			CREATE UNIQUE INDEX IF NOT EXISTS %[1]s_vin_live
				ON %[1]s (vin) WHERE NOT deleted;`, table)
		if _, err := db.Exec(ddl); err != nil {
			return nil, err
		}
	}

	log.Info("postgres connected and tables ready")
	return db, nil
}

// InitSQLite opens a file-backed sqlite database with the same schema.
func InitSQLite(path string, log *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	for _, table := range []string{"delivery_records", "service_records"} {
		ddl := fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %[1]s (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				vin TEXT NOT NULL,
				char_count INTEGER NOT NULL,
				registered BOOLEAN NOT NULL DEFAULT 0,
				repeat_count INTEGER NOT NULL DEFAULT 0,
				last_repeated_at TIMESTAMP,
				created_at TIMESTAMP NOT NULL,
				deleted BOOLEAN NOT NULL DEFAULT 0,
				deleted_at TIMESTAMP
			);
			CREATE UNIQUE INDEX IF NOT EXISTS %[1]s_vin_live
				ON %[1]s (vin) WHERE NOT deleted;`, table)
		if _, err := db.Exec(ddl); err != nil {
			return nil, err
		}
	}

	log.Info("sqlite database ready", zap.String("path", path))
	return db, nil
}

// VinRepository implements storage.Store on a *sql.DB.
type VinRepository struct {
	db      *sql.DB
	dialect string
	log     *zap.Logger
}

func NewVinRepository(db *sql.DB, dialect string, log *zap.Logger) *VinRepository {
	return &VinRepository{db: db, dialect: dialect, log: log}
}

var _ storage.Store = (*VinRepository)(nil)

// tableFor maps a collection name onto its table. Collection names come
// from a closed set; anything else is rejected so no request data ever
// reaches the SQL text.
func tableFor(collection string) (string, error) {
	switch collection {
	case models.CollectionDelivery:
		return "delivery_records", nil
	case models.CollectionService:
		return "service_records", nil
	}
	return "", fmt.Errorf("unknown collection: %s", collection)
}

// isUniqueViolation classifies driver errors from the partial unique
// index. This is what turns the check-then-insert race into ErrConflict.
func (r *VinRepository) isUniqueViolation(err error) bool {
	if r.dialect == DialectPostgres {
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
	}
	// modernc/sqlite wraps SQLITE_CONSTRAINT_UNIQUE in a plain error
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "constraint failed")
}

func scanRecord(row interface{ Scan(...any) error }) (*models.VinRecord, error) {
	var rec models.VinRecord
	var lastRepeated, deletedAt sql.NullTime
	err := row.Scan(&rec.ID, &rec.VIN, &rec.CharCount, &rec.Registered,
		&rec.RepeatCount, &lastRepeated, &rec.CreatedAt, &rec.Deleted, &deletedAt)
	if err != nil {
		return nil, err
	}
	if lastRepeated.Valid {
		rec.LastRepeatedAt = &lastRepeated.Time
	}
	if deletedAt.Valid {
		rec.DeletedAt = &deletedAt.Time
	}
	return &rec, nil
}

func (r *VinRepository) Insert(ctx context.Context, collection, vin string) (*models.VinRecord, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`INSERT INTO %s (vin, char_count, registered, repeat_count, created_at, deleted)
		VALUES ($1, $2, FALSE, 0, $3, FALSE) RETURNING `+recordColumns, table)

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, vin, len(vin), time.Now().UTC()))
	if err != nil {
		if r.isUniqueViolation(err) {
			return nil, storage.ErrConflict
		}
		r.log.Error("insert failed", zap.String("collection", collection), zap.Error(err))
		return nil, err
	}
	return rec, nil
}

func (r *VinRepository) FindByID(ctx context.Context, collection string, id int64) (*models.VinRecord, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT "+recordColumns+" FROM %s WHERE id = $1", table)
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return rec, err
}

func (r *VinRepository) FindByVIN(ctx context.Context, collection, vin string) (*models.VinRecord, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT "+recordColumns+" FROM %s WHERE vin = $1 AND NOT deleted", table)
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, vin))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return rec, err
}

func (r *VinRepository) UpdateVIN(ctx context.Context, collection string, id int64, vin string) (*models.VinRecord, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}

	// Collision check against other live rows; the unique index backs
	// this up if a concurrent writer slips between check and update.
	var otherID int64
	checkQuery := fmt.Sprintf("SELECT id FROM %s WHERE vin = $1 AND id != $2 AND NOT deleted", table)
	err = r.db.QueryRowContext(ctx, checkQuery, vin, id).Scan(&otherID)
	if err == nil {
		return nil, storage.ErrConflict
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	query := fmt.Sprintf("UPDATE %s SET vin = $1, char_count = $2 WHERE id = $3 RETURNING "+recordColumns, table)
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, vin, len(vin), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil && r.isUniqueViolation(err) {
		return nil, storage.ErrConflict
	}
	return rec, err
}

func (r *VinRepository) SetRegistered(ctx context.Context, collection string, id int64, registered bool) (*models.VinRecord, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("UPDATE %s SET registered = $1 WHERE id = $2 RETURNING "+recordColumns, table)
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, registered, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return rec, err
}

func (r *VinRepository) MarkRepeated(ctx context.Context, collection string, id int64) (*models.VinRecord, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`UPDATE %s SET repeat_count = repeat_count + 1, registered = FALSE, last_repeated_at = $1
		WHERE id = $2 RETURNING `+recordColumns, table)
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, time.Now().UTC(), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return rec, err
}

func (r *VinRepository) SoftDelete(ctx context.Context, collection string, id int64) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("UPDATE %s SET deleted = TRUE, deleted_at = $1 WHERE id = $2 AND NOT deleted", table)
	return r.execExpectingRow(ctx, query, time.Now().UTC(), id)
}

func (r *VinRepository) Restore(ctx context.Context, collection string, id int64) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}

	// Restoring collides with the partial unique index when the same
	// VIN was re-added while this row sat in the trash.
	query := fmt.Sprintf("UPDATE %s SET deleted = FALSE, deleted_at = NULL WHERE id = $1 AND deleted", table)
	err = r.execExpectingRow(ctx, query, id)
	if err != nil && r.isUniqueViolation(err) {
		return storage.ErrConflict
	}
	return err
}

func (r *VinRepository) execExpectingRow(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// filterClause builds WHERE conditions for a models.Filter starting at
// placeholder $startAt. The deleted condition is always the caller's.
func filterClause(f models.Filter, startAt int) (string, []any) {
	conds := make([]string, 0, 4)
	args := make([]any, 0, 2)
	n := startAt

	if f.Date != "" {
		conds = append(conds, fmt.Sprintf("DATE(created_at) = $%d", n))
		args = append(args, f.Date)
		n++
	}
	switch f.Registered {
	case models.FilterRegistered:
		conds = append(conds, "registered")
	case models.FilterNotRegistered:
		conds = append(conds, "NOT registered")
	}
	switch f.Repeated {
	case models.FilterRepeated:
		conds = append(conds, "repeat_count > 0")
	case models.FilterNotRepeated:
		conds = append(conds, "repeat_count = 0")
	}
	if f.Search != "" {
		conds = append(conds, fmt.Sprintf("vin LIKE $%d", n))
		args = append(args, "%"+strings.ToUpper(f.Search)+"%")
		n++
	}

	if len(conds) == 0 {
		return "", args
	}
	return " AND " + strings.Join(conds, " AND "), args
}

func (r *VinRepository) queryRecords(ctx context.Context, query string, args ...any) ([]models.VinRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]models.VinRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (r *VinRepository) List(ctx context.Context, collection string, filter models.Filter) ([]models.VinRecord, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}

	clause, args := filterClause(filter, 1)
	query := fmt.Sprintf("SELECT "+recordColumns+" FROM %s WHERE NOT deleted%s ORDER BY id ASC", table, clause)
	return r.queryRecords(ctx, query, args...)
}

func (r *VinRepository) ListDeleted(ctx context.Context, collection string) ([]models.VinRecord, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT "+recordColumns+" FROM %s WHERE deleted ORDER BY id ASC", table)
	return r.queryRecords(ctx, query)
}

func (r *VinRepository) RegisterAll(ctx context.Context, collection string, registered bool, filter models.Filter) (int64, error) {
	table, err := tableFor(collection)
	if err != nil {
		return 0, err
	}

	clause, args := filterClause(filter, 2)
	query := fmt.Sprintf("UPDATE %s SET registered = $1 WHERE NOT deleted AND registered != $1%s", table, clause)
	res, err := r.db.ExecContext(ctx, query, append([]any{registered}, args...)...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *VinRepository) DeleteAll(ctx context.Context, collection string, filter models.Filter) (int64, error) {
	table, err := tableFor(collection)
	if err != nil {
		return 0, err
	}

	clause, args := filterClause(filter, 2)
	query := fmt.Sprintf("UPDATE %s SET deleted = TRUE, deleted_at = $1 WHERE NOT deleted%s", table, clause)
	res, err := r.db.ExecContext(ctx, query, append([]any{time.Now().UTC()}, args...)...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *VinRepository) RestoreAll(ctx context.Context, collection string) (int64, error) {
	table, err := tableFor(collection)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("UPDATE %s SET deleted = FALSE, deleted_at = NULL WHERE deleted", table)
	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *VinRepository) EmptyTrash(ctx context.Context, collection string) (int64, error) {
	table, err := tableFor(collection)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE deleted", table)
	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *VinRepository) Duplicates(ctx context.Context, collection string) ([]models.Duplicate, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT vin, COUNT(*) FROM %s WHERE NOT deleted
		GROUP BY vin HAVING COUNT(*) > 1 ORDER BY vin`, table)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dups := make([]models.Duplicate, 0)
	for rows.Next() {
		var d models.Duplicate
		if err := rows.Scan(&d.VIN, &d.Count); err != nil {
			return nil, err
		}
		dups = append(dups, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Fill in the ids per duplicated vin; duplicates are rare so the
	// extra round trips do not matter.
	for i := range dups {
		idQuery := fmt.Sprintf("SELECT id FROM %s WHERE vin = $1 AND NOT deleted ORDER BY id", table)
		idRows, err := r.db.QueryContext(ctx, idQuery, dups[i].VIN)
		if err != nil {
			return nil, err
		}
		for idRows.Next() {
			var id int64
			if err := idRows.Scan(&id); err != nil {
				idRows.Close()
				return nil, err
			}
			dups[i].IDs = append(dups[i].IDs, id)
		}
		if err := idRows.Err(); err != nil {
			idRows.Close()
			return nil, err
		}
		idRows.Close()
	}
	return dups, nil
}

func (r *VinRepository) PingContext(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

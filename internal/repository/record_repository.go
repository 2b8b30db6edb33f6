package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/depomarket/retail-service/internal/domain"
)

// ErrVersionConflict reports a lost optimistic-concurrency race: the record
// changed between load and save.
var ErrVersionConflict = errors.New("record version conflict")

// RecordFilter captures admin listing parameters.
type RecordFilter struct {
	Statuses    []domain.Status
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// RecordRepository encapsulates record persistence. SaveTransition persists
// a status change and its audit row in one transaction so history and
// status never diverge.
type RecordRepository interface {
	Create(ctx context.Context, rec *domain.Record) error
	GetByID(ctx context.Context, id string) (*domain.Record, error)
	GetByDisplayNumber(ctx context.Context, number string) (*domain.Record, error)
	ListByKind(ctx context.Context, kind domain.RecordKind, filter RecordFilter) ([]domain.Record, error)
	SaveTransition(ctx context.Context, rec *domain.Record, entry *domain.HistoryEntry) error
	Delete(ctx context.Context, id string) error
	DeleteAllByKind(ctx context.Context, kind domain.RecordKind) (int64, error)
}

type recordRepository struct {
	pool *pgxpool.Pool
}

// NewRecordRepository instantiates repository.
func NewRecordRepository(pool *pgxpool.Pool) RecordRepository {
	return &recordRepository{pool: pool}
}

const recordColumns = `id, kind, display_number, status, customer_name, customer_email, customer_phone, payload, version, created_at, updated_at`

func (r *recordRepository) Create(ctx context.Context, rec *domain.Record) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insertRecord = `
        INSERT INTO records (kind, display_number, status, customer_name, customer_email, customer_phone, payload)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, version, created_at, updated_at`
	if err := tx.QueryRow(ctx, insertRecord,
		rec.Kind,
		rec.DisplayNumber,
		rec.Status,
		rec.CustomerName,
		rec.CustomerEmail,
		rec.CustomerPhone,
		rec.Payload,
	).Scan(&rec.ID, &rec.Version, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return err
	}

	if len(rec.StatusHistory) > 0 {
		entry := &rec.StatusHistory[0]
		entry.RecordID = rec.ID
		const insertHistory = `
            INSERT INTO record_history (record_id, previous_status, new_status, note, changed_by, changed_at)
            VALUES ($1,$2,$3,$4,$5,$6)
            RETURNING id`
		if err := tx.QueryRow(ctx, insertHistory,
			entry.RecordID,
			entry.PreviousStatus,
			entry.NewStatus,
			entry.Note,
			entry.ChangedBy,
			rec.CreatedAt,
		).Scan(&entry.ID); err != nil {
			return err
		}
		entry.ChangedAt = rec.CreatedAt
	}

	return tx.Commit(ctx)
}

func (r *recordRepository) GetByID(ctx context.Context, id string) (*domain.Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM records WHERE id=$1`, recordColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *recordRepository) GetByDisplayNumber(ctx context.Context, number string) (*domain.Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM records WHERE display_number=$1`, recordColumns)
	return r.fetchSingle(ctx, query, number)
}

func (r *recordRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Record, error) {
	var rec domain.Record
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&rec.ID,
		&rec.Kind,
		&rec.DisplayNumber,
		&rec.Status,
		&rec.CustomerName,
		&rec.CustomerEmail,
		&rec.CustomerPhone,
		&rec.Payload,
		&rec.Version,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recordRepository) ListByKind(ctx context.Context, kind domain.RecordKind, filter RecordFilter) ([]domain.Record, error) {
	clauses := []string{"kind=$1"}
	args := []any{kind}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(customer_name) LIKE %s OR LOWER(customer_email) LIKE %s OR LOWER(display_number) LIKE %s)", placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM records WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		recordColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// SaveTransition writes the already-validated in-memory transition: the
// status update is guarded by the version the record was loaded with, and
// the history row lands in the same transaction.
func (r *recordRepository) SaveTransition(ctx context.Context, rec *domain.Record, entry *domain.HistoryEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const update = `
        UPDATE records SET status=$1, updated_at=$2, version=version+1
        WHERE id=$3 AND version=$4`
	cmd, err := tx.Exec(ctx, update, rec.Status, rec.UpdatedAt, rec.ID, rec.Version)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM records WHERE id=$1)`, rec.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return pgx.ErrNoRows
		}
		return ErrVersionConflict
	}

	const insertHistory = `
        INSERT INTO record_history (record_id, previous_status, new_status, note, changed_by, changed_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`
	if err := tx.QueryRow(ctx, insertHistory,
		entry.RecordID,
		entry.PreviousStatus,
		entry.NewStatus,
		entry.Note,
		entry.ChangedBy,
		entry.ChangedAt,
	).Scan(&entry.ID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	rec.Version++
	return nil
}

func (r *recordRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM records WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *recordRepository) DeleteAllByKind(ctx context.Context, kind domain.RecordKind) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM records WHERE kind=$1`, kind)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func scanRecords(rows pgx.Rows) ([]domain.Record, error) {
	var result []domain.Record
	for rows.Next() {
		var rec domain.Record
		if err := rows.Scan(
			&rec.ID,
			&rec.Kind,
			&rec.DisplayNumber,
			&rec.Status,
			&rec.CustomerName,
			&rec.CustomerEmail,
			&rec.CustomerPhone,
			&rec.Payload,
			&rec.Version,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

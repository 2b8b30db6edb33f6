package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/depomarket/retail-service/internal/domain"
)

// HistoryRepository reads the append-only audit trail. Writes happen inside
// RecordRepository transactions so status and history move together.
type HistoryRepository interface {
	ListByRecord(ctx context.Context, recordID string) ([]domain.HistoryEntry, error)
}

type historyRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository builds repository.
func NewHistoryRepository(pool *pgxpool.Pool) HistoryRepository {
	return &historyRepository{pool: pool}
}

func (r *historyRepository) ListByRecord(ctx context.Context, recordID string) ([]domain.HistoryEntry, error) {
	const query = `
        SELECT id, record_id, previous_status, new_status, note, changed_by, changed_at
        FROM record_history WHERE record_id=$1 ORDER BY changed_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.RecordID,
			&entry.PreviousStatus,
			&entry.NewStatus,
			&entry.Note,
			&entry.ChangedBy,
			&entry.ChangedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

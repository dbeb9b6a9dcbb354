package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"chatrelay-backend/internal/models"
)

// HistoryLimit caps how many records the history endpoint returns.
const HistoryLimit = 50

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

// Insert writes one immutable record. The creation timestamp is assigned by
// the database and scanned back.
func (r *MessageRepo) Insert(ctx context.Context, rec *models.MessageRecord) error {
	rec.ID = uuid.New()

	query := `INSERT INTO messages (id, user_message, ai_response)
		VALUES ($1, $2, $3) RETURNING created_at`

	return r.pool.QueryRow(ctx, query, rec.ID, rec.UserMessage, rec.AIResponse).Scan(&rec.Timestamp)
}

// ListRecent returns at most limit records, newest first.
func (r *MessageRepo) ListRecent(ctx context.Context, limit int) ([]models.MessageRecord, error) {
	if limit <= 0 || limit > HistoryLimit {
		limit = HistoryLimit
	}

	query := `SELECT id, user_message, ai_response, created_at
		FROM messages ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.MessageRecord{}
	for rows.Next() {
		var rec models.MessageRecord
		if err := rows.Scan(&rec.ID, &rec.UserMessage, &rec.AIResponse, &rec.Timestamp); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

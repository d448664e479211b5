package cash

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// ListToday returns today's movements, newest first.
	ListToday(ctx context.Context) ([]Movement, error)
	Insert(ctx context.Context, m *Movement) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) ListToday(ctx context.Context) ([]Movement, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, type, amount::text, description, order_id, created_at
		FROM cash_movements
		WHERE created_at >= date_trunc('day', NOW())
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Movement
	for rows.Next() {
		var m Movement
		if err := rows.Scan(&m.ID, &m.Type, &m.Amount, &m.Description, &m.OrderID, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PGRepo) Insert(ctx context.Context, m *Movement) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.db.QueryRow(ctx, `
		INSERT INTO cash_movements (id, type, amount, description, order_id, created_at)
		VALUES ($1,$2,$3,$4,$5,NOW())
		RETURNING created_at
	`, m.ID, m.Type, m.Amount, m.Description, m.OrderID).Scan(&m.CreatedAt)
}

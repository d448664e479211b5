// Package table tracks the seating units and their occupancy.
package table

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusOccupied  Status = "occupied"
	StatusReserved  Status = "reserved"
)

func ValidStatus(s Status) bool {
	return s == StatusAvailable || s == StatusOccupied || s == StatusReserved
}

type Table struct {
	ID          string    `json:"id"`
	TableNumber int       `json:"table_number"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

var ErrNotFound = errors.New("table not found")

type Repository interface {
	List(ctx context.Context) ([]Table, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	// SetOccupied is the follow-up write issued when a table order is
	// submitted; see order.TableOccupier.
	SetOccupied(ctx context.Context, id string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) List(ctx context.Context) ([]Table, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, table_number, status, created_at
		FROM tables ORDER BY table_number
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Table
	for rows.Next() {
		var t Table
		if err := rows.Scan(&t.ID, &t.TableNumber, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE tables SET status = $2 WHERE id = $1
	`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) SetOccupied(ctx context.Context, id string) error {
	return r.UpdateStatus(ctx, id, StatusOccupied)
}

package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, o *Order, lines []Line) error
	GetByID(ctx context.Context, id string) (*Order, []Line, error)
	List(ctx context.Context, statuses []Status, oldestFirst bool) ([]Order, error)
	GetLines(ctx context.Context, orderID string) ([]Line, error)
	// UpdateStatus only applies when the stored status still equals from,
	// so two terminals cannot advance the same order twice.
	UpdateStatus(ctx context.Context, id string, from, to Status) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, o *Order, lines []Line) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.QueryRow(ctx, `
    INSERT INTO orders (id, order_number, total, status, payment_method, amount_paid, change_amount, table_id, order_type, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW(),NOW())
    RETURNING created_at, updated_at
  `, o.ID, o.OrderNumber, o.Total, o.Status, o.PaymentMethod, o.AmountPaid, o.ChangeAmount, o.TableID, o.OrderType).
		Scan(&o.CreatedAt, &o.UpdatedAt); err != nil {
		return err
	}

	for i := range lines {
		lines[i].OrderID = o.ID
		if _, err := tx.Exec(ctx, `
      INSERT INTO order_items (id, order_id, product_id, name, quantity, unit_price, total_price)
      VALUES ($1,$2,$3,$4,$5,$6,$7)
    `, lines[i].ID, o.ID, lines[i].ProductID, lines[i].Name, lines[i].Quantity, lines[i].UnitPrice, lines[i].TotalPrice); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, []Line, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o Order
	if err := r.db.QueryRow(ctx, `
    SELECT id, order_number, total::text, status, payment_method, amount_paid::text, change_amount::text, table_id, order_type, created_at, updated_at
    FROM orders WHERE id=$1
  `, id).Scan(&o.ID, &o.OrderNumber, &o.Total, &o.Status, &o.PaymentMethod, &o.AmountPaid, &o.ChangeAmount, &o.TableID, &o.OrderType, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, nil, ErrNotFound
	}
	lines, err := r.GetLines(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return &o, lines, nil
}

func (r *PGRepo) List(ctx context.Context, statuses []Status, oldestFirst bool) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	q := `
    SELECT id, order_number, total::text, status, payment_method, amount_paid::text, change_amount::text, table_id, order_type, created_at, updated_at
    FROM orders`
	args := []any{}
	if len(statuses) > 0 {
		ph := make([]string, len(statuses))
		for i, s := range statuses {
			ph[i] = fmt.Sprintf("$%d", i+1)
			args = append(args, string(s))
		}
		q += " WHERE status IN (" + strings.Join(ph, ",") + ")"
	}
	if oldestFirst {
		q += " ORDER BY created_at ASC"
	} else {
		q += " ORDER BY created_at DESC"
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.Total, &o.Status, &o.PaymentMethod, &o.AmountPaid, &o.ChangeAmount, &o.TableID, &o.OrderType, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetLines(ctx context.Context, orderID string) ([]Line, error) {
	rows, err := r.db.Query(ctx, `
    SELECT id, order_id, product_id, name, quantity, unit_price::text, total_price::text
    FROM order_items WHERE order_id=$1
  `, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Name, &l.Quantity, &l.UnitPrice, &l.TotalPrice); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
    UPDATE orders
    SET status = $3, updated_at = NOW()
    WHERE id = $1 AND status = $2
  `, id, from, to)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// the order moved on (or never existed) since the caller read it
		return ErrIllegalTransition
	}
	return nil
}

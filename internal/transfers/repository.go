package transfers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/interbanking/interbanking-api/internal/platform/db"
)

type Repository interface {
	Create(ctx context.Context, transfer Transfer) (Transfer, error)
	ListSince(ctx context.Context, since time.Time) ([]Transfer, error)
}

type repository struct {
	db db.Queryer
}

func NewRepository(q db.Queryer) Repository {
	return &repository{db: q}
}

const insertTransferQuery = `INSERT INTO transfers (id, company_id, amount, debit_account, credit_account, transfer_date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (r *repository) Create(ctx context.Context, t Transfer) (Transfer, error) {
	now := time.Now().UTC()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := r.db.Exec(ctx, insertTransferQuery,
		t.ID, t.CompanyID, t.Amount, t.DebitAccount, t.CreditAccount, t.TransferDate, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return Transfer{}, fmt.Errorf("transfers: insert: %w", err)
	}
	return t, nil
}

const listSinceQuery = `SELECT id, company_id, amount, debit_account, credit_account, transfer_date, created_at, updated_at
FROM transfers
WHERE transfer_date >= $1
ORDER BY transfer_date DESC`

func (r *repository) ListSince(ctx context.Context, since time.Time) ([]Transfer, error) {
	rows, err := r.db.Query(ctx, listSinceQuery, since)
	if err != nil {
		return nil, fmt.Errorf("transfers: list since: %w", err)
	}
	defer rows.Close()

	var out []Transfer
	for rows.Next() {
		var t Transfer
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Amount, &t.DebitAccount, &t.CreditAccount, &t.TransferDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("transfers: scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

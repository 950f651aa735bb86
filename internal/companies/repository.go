package companies

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/interbanking/interbanking-api/internal/platform/db"
	"github.com/interbanking/interbanking-api/internal/platform/httpx"
	"github.com/interbanking/interbanking-api/internal/shared"
)

// MsgDuplicateCUIT is returned when a CUIT is already registered.
const MsgDuplicateCUIT = "Company with this CUIT already exists"

const cuitConstraint = "companies_cuit_key"

// Repository persists companies and reads the transfer/company join.
//
//go:generate mockgen -destination=mocks/mock_repository.go -package=mock_companies -source=repository.go Repository
type Repository interface {
	ExistsByCUIT(ctx context.Context, cuit string) (bool, error)
	Create(ctx context.Context, company Company) (Company, error)
	CountJoinedSince(ctx context.Context, since time.Time) (int, error)
	ListJoinedSince(ctx context.Context, since time.Time, page shared.PageRequest) ([]Company, error)
	CountTransfersSince(ctx context.Context, since time.Time) (int, error)
	ListTransfersSince(ctx context.Context, since time.Time, page shared.PageRequest) ([]TransferWithCompany, error)
}

type repository struct {
	db db.Queryer
}

// NewRepository returns a Postgres-backed Repository.
func NewRepository(q db.Queryer) Repository {
	return &repository{db: q}
}

const existsByCUITQuery = `SELECT EXISTS (SELECT 1 FROM companies WHERE cuit = $1)`

func (r *repository) ExistsByCUIT(ctx context.Context, cuit string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, existsByCUITQuery, cuit).Scan(&exists); err != nil {
		return false, fmt.Errorf("companies: exists by cuit: %w", err)
	}
	return exists, nil
}

const insertCompanyQuery = `INSERT INTO companies (id, cuit, business_name, company_type, adhesion_date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

func (r *repository) Create(ctx context.Context, company Company) (Company, error) {
	now := time.Now().UTC()
	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	company.CreatedAt = now
	company.UpdatedAt = now

	_, err := r.db.Exec(ctx, insertCompanyQuery,
		company.ID,
		company.CUIT,
		company.BusinessName,
		string(company.CompanyType),
		company.AdhesionDate,
		company.CreatedAt,
		company.UpdatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err, cuitConstraint) {
			return Company{}, httpx.NewError(httpx.ErrDuplicate, MsgDuplicateCUIT)
		}
		return Company{}, fmt.Errorf("companies: insert: %w", err)
	}
	return company, nil
}

const countJoinedSinceQuery = `SELECT COUNT(*) FROM companies WHERE adhesion_date >= $1`

func (r *repository) CountJoinedSince(ctx context.Context, since time.Time) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, countJoinedSinceQuery, since).Scan(&total); err != nil {
		return 0, fmt.Errorf("companies: count joined: %w", err)
	}
	return total, nil
}

const listJoinedSinceQuery = `SELECT id, cuit, business_name, company_type, adhesion_date, created_at, updated_at
FROM companies
WHERE adhesion_date >= $1
ORDER BY adhesion_date DESC
LIMIT $2 OFFSET $3`

func (r *repository) ListJoinedSince(ctx context.Context, since time.Time, page shared.PageRequest) ([]Company, error) {
	rows, err := r.db.Query(ctx, listJoinedSinceQuery, since, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("companies: list joined: %w", err)
	}
	defer rows.Close()

	var out []Company
	for rows.Next() {
		var (
			c    Company
			kind string
		)
		if err := rows.Scan(&c.ID, &c.CUIT, &c.BusinessName, &kind, &c.AdhesionDate, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("companies: scan joined: %w", err)
		}
		c.CompanyType = CompanyType(kind)
		out = append(out, c)
	}
	return out, rows.Err()
}

const countTransfersSinceQuery = `SELECT COUNT(*) FROM transfers WHERE transfer_date >= $1`

func (r *repository) CountTransfersSince(ctx context.Context, since time.Time) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, countTransfersSinceQuery, since).Scan(&total); err != nil {
		return 0, fmt.Errorf("companies: count transfers: %w", err)
	}
	return total, nil
}

// The join is a LEFT JOIN so unresolved references still consume a page slot
// and can be reported by the caller.
const listTransfersSinceQuery = `SELECT t.id, t.company_id, t.amount, t.debit_account, t.credit_account, t.transfer_date,
       c.id, c.cuit, c.business_name, c.company_type, c.adhesion_date, c.created_at, c.updated_at
FROM transfers t
LEFT JOIN companies c ON c.id::text = t.company_id
WHERE t.transfer_date >= $1
ORDER BY t.transfer_date DESC
LIMIT $2 OFFSET $3`

func (r *repository) ListTransfersSince(ctx context.Context, since time.Time, page shared.PageRequest) ([]TransferWithCompany, error) {
	rows, err := r.db.Query(ctx, listTransfersSinceQuery, since, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("companies: list transfers: %w", err)
	}
	defer rows.Close()

	var out []TransferWithCompany
	for rows.Next() {
		t, err := scanTransferWithCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTransferWithCompany(row pgx.Row) (TransferWithCompany, error) {
	var (
		t            TransferWithCompany
		companyID    *string
		cuit         *string
		businessName *string
		kind         *string
		adhesionDate *time.Time
		createdAt    *time.Time
		updatedAt    *time.Time
	)
	err := row.Scan(
		&t.ID, &t.CompanyID, &t.Amount, &t.DebitAccount, &t.CreditAccount, &t.TransferDate,
		&companyID, &cuit, &businessName, &kind, &adhesionDate, &createdAt, &updatedAt,
	)
	if err != nil {
		return TransferWithCompany{}, fmt.Errorf("companies: scan transfer: %w", err)
	}
	if companyID == nil {
		return t, nil
	}
	c := &Company{ID: *companyID}
	if cuit != nil {
		c.CUIT = *cuit
	}
	if businessName != nil {
		c.BusinessName = *businessName
	}
	if kind != nil {
		c.CompanyType = CompanyType(*kind)
	}
	if adhesionDate != nil {
		c.AdhesionDate = *adhesionDate
	}
	if createdAt != nil {
		c.CreatedAt = *createdAt
	}
	if updatedAt != nil {
		c.UpdatedAt = *updatedAt
	}
	t.Company = c
	return t, nil
}

package transfers

import (
	"time"

	"github.com/interbanking/interbanking-api/internal/platform/clock"
)

// Transfer is a bank transfer. CompanyID is stored as given and is not
// checked against the companies table.
type Transfer struct {
	ID            string
	CompanyID     string
	Amount        float64
	DebitAccount  string
	CreditAccount string
	TransferDate  time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateTransferRequest is the POST /transfers payload.
type CreateTransferRequest struct {
	CompanyID     string   `json:"companyId" validate:"required"`
	Amount        *float64 `json:"amount" validate:"required,gt=0"`
	DebitAccount  string   `json:"debitAccount" validate:"required"`
	CreditAccount string   `json:"creditAccount" validate:"required"`
	TransferDate  string   `json:"transferDate" validate:"required,isodate"`
}

// Response is the full transfer projection.
type Response struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"companyId"`
	Amount        float64         `json:"amount"`
	DebitAccount  string          `json:"debitAccount"`
	CreditAccount string          `json:"creditAccount"`
	TransferDate  clock.Timestamp `json:"transferDate"`
	CreatedAt     clock.Timestamp `json:"createdAt"`
	UpdatedAt     clock.Timestamp `json:"updatedAt"`
}

func toResponse(t Transfer) Response {
	return Response{
		ID:            t.ID,
		CompanyID:     t.CompanyID,
		Amount:        t.Amount,
		DebitAccount:  t.DebitAccount,
		CreditAccount: t.CreditAccount,
		TransferDate:  clock.At(t.TransferDate),
		CreatedAt:     clock.At(t.CreatedAt),
		UpdatedAt:     clock.At(t.UpdatedAt),
	}
}

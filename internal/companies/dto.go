package companies

import (
	"github.com/interbanking/interbanking-api/internal/platform/clock"
	"github.com/interbanking/interbanking-api/internal/shared"
)

// CreateCompanyRequest is the adhesion payload.
type CreateCompanyRequest struct {
	CUIT         string      `json:"cuit" validate:"required,cuit"`
	BusinessName string      `json:"businessName" validate:"required,min=3,max=100"`
	CompanyType  CompanyType `json:"companyType" validate:"required,oneof=sme corporate"`
	AdhesionDate string      `json:"adhesionDate" validate:"required,datefmt,calendardate"`
}

// AdhesionResponse is returned after a successful adhesion.
type AdhesionResponse struct {
	ID           string          `json:"id"`
	CUIT         string          `json:"cuit"`
	BusinessName string          `json:"businessName"`
	CompanyType  CompanyType     `json:"companyType"`
	AdhesionDate clock.Timestamp `json:"adhesionDate"`
}

// JoinedCompany is a row of the joined-last-month listing.
type JoinedCompany struct {
	ID           string          `json:"id"`
	CUIT         string          `json:"cuit"`
	BusinessName string          `json:"businessName"`
	CompanyType  CompanyType     `json:"companyType"`
	AdhesionDate clock.Timestamp `json:"adhesionDate"`
}

// CompanyTransfer is a row of the with-transfers listing.
type CompanyTransfer struct {
	ID            string  `json:"id"`
	CompanyID     string  `json:"companyId"`
	Amount        float64 `json:"amount"`
	DebitAccount  string  `json:"debitAccount"`
	CreditAccount string  `json:"creditAccount"`
}

// JoinedPage is the paginated joined-last-month envelope.
type JoinedPage = shared.Page[JoinedCompany]

// TransfersPage is the paginated with-transfers envelope.
type TransfersPage = shared.Page[CompanyTransfer]

func toAdhesionResponse(c Company) AdhesionResponse {
	return AdhesionResponse{
		ID:           c.ID,
		CUIT:         c.CUIT,
		BusinessName: c.BusinessName,
		CompanyType:  c.CompanyType,
		AdhesionDate: clock.At(c.AdhesionDate),
	}
}

func toJoinedCompany(c Company) JoinedCompany {
	return JoinedCompany{
		ID:           c.ID,
		CUIT:         c.CUIT,
		BusinessName: c.BusinessName,
		CompanyType:  c.CompanyType,
		AdhesionDate: clock.At(c.AdhesionDate),
	}
}

func toCompanyTransfer(t TransferWithCompany) CompanyTransfer {
	return CompanyTransfer{
		ID:            t.ID,
		CompanyID:     t.Company.ID,
		Amount:        t.Amount,
		DebitAccount:  t.DebitAccount,
		CreditAccount: t.CreditAccount,
	}
}

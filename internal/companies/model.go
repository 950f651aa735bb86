package companies

import "time"

// CompanyType classifies a company.
type CompanyType string

const (
	TypeSME       CompanyType = "sme"
	TypeCorporate CompanyType = "corporate"
)

// Company is a registered company. Companies are created once and never
// updated or deleted.
type Company struct {
	ID           string
	CUIT         string
	BusinessName string
	CompanyType  CompanyType
	AdhesionDate time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TransferWithCompany is a transfer row joined with the company it
// references. Company is nil when the reference does not resolve.
type TransferWithCompany struct {
	ID            string
	CompanyID     string
	Amount        float64
	DebitAccount  string
	CreditAccount string
	TransferDate  time.Time
	Company       *Company
}

// Package seed builds and loads the demo data set used for local
// development and manual testing of the listing endpoints.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/interbanking/interbanking-api/internal/companies"
	"github.com/interbanking/interbanking-api/internal/platform/clock"
	"github.com/interbanking/interbanking-api/internal/transfers"
)

// Scenario is a consistent set of companies and transfers anchored on a
// reference instant.
type Scenario struct {
	Now       time.Time
	Companies []companies.Company
	Transfers []transfers.Transfer
}

type companySeed struct {
	cuit string
	name string
	kind companies.CompanyType
	at   func(now time.Time) time.Time
}

func monthsAgo(n int) func(time.Time) time.Time {
	return func(now time.Time) time.Time { return clock.MonthsAgo(now, n) }
}

func daysAgo(n int) func(time.Time) time.Time {
	return func(now time.Time) time.Time { return now.AddDate(0, 0, -n) }
}

// Older than one month; none of these show up in the joined listing.
var olderCompanies = []companySeed{
	{"20100000001", "Antigua Corporacion SA", companies.TypeCorporate, monthsAgo(24)},
	{"20100000002", "Vieja Empresa SRL", companies.TypeSME, monthsAgo(18)},
	{"20100000003", "Servicios Historicos SA", companies.TypeCorporate, monthsAgo(12)},
	{"20100000004", "Comercial Semestral SRL", companies.TypeSME, monthsAgo(6)},
	{"20100000005", "Tech Legacy SA", companies.TypeCorporate, monthsAgo(4)},
	{"20100000006", "Industrias del Pasado SRL", companies.TypeSME, monthsAgo(3)},
	{"20100000007", "Logistica Anterior SA", companies.TypeCorporate, monthsAgo(2)},
	{"20100000008", "Construcciones Viejas SRL", companies.TypeSME, monthsAgo(2)},
	{"20100000009", "Empresa Limite SA", companies.TypeCorporate, daysAgo(35)},
	{"20100000010", "Servicios Frontera SRL", companies.TypeSME, daysAgo(32)},
	{"20100000011", "Comercial Borde SA", companies.TypeCorporate, daysAgo(31)},
	{"20100000012", "Tech Pasado SRL", companies.TypeSME, daysAgo(31)},
}

var recentCompanies = []companySeed{
	{"20200000001", "Innovatech Argentina SA", companies.TypeCorporate, daysAgo(28)},
	{"20200000002", "Servicios Modernos SRL", companies.TypeSME, daysAgo(25)},
	{"20200000003", "Logistica Express SA", companies.TypeCorporate, daysAgo(20)},
	{"20200000004", "Construcciones del Norte SRL", companies.TypeSME, daysAgo(15)},
	{"20200000005", "Tech Nueva Era SA", companies.TypeCorporate, daysAgo(10)},
	{"20200000006", "Comercial Actual SRL", companies.TypeSME, daysAgo(7)},
	{"20200000007", "Industrias Recientes SA", companies.TypeCorporate, daysAgo(3)},
	{"20200000008", "Servicios de Hoy SRL", companies.TypeSME, daysAgo(1)},
}

type transferSeed struct {
	cuit   string
	amount float64
	debit  string
	credit string
	at     func(now time.Time) time.Time
}

var transferSeeds = []transferSeed{
	{"20100000007", 150000.50, "0000003100012345678", "0000003200087654321", daysAgo(20)},
	{"20100000008", 75000.00, "0000003100098765432", "0000003200099988877", daysAgo(15)},
	{"20200000001", 250000.00, "0000003100055566677", "0000003200044455566", daysAgo(27)},
	{"20200000002", 30000.00, "0000003100011223344", "0000003200099887766", daysAgo(24)},
	{"20200000003", 180000.25, "0000003100077788899", "0000003200055544433", daysAgo(19)},
	{"20200000003", 95000.00, "0000003100077788899", "0000003200022211100", daysAgo(18)},
	{"20200000004", 120000.00, "0000003100011122233", "0000003200077788899", daysAgo(14)},
	{"20200000005", 200000.75, "0000003100099988877", "0000003200033344455", daysAgo(9)},
	{"20200000006", 85000.50, "0000003100066677788", "0000003200088899900", daysAgo(6)},
	{"20200000007", 300000.00, "0000003100055544433", "0000003200011122233", daysAgo(2)},
	{"20200000008", 150000.25, "0000003100044433322", "0000003200077766655", daysAgo(1)},
	// Outside the last month.
	{"20100000001", 100000.00, "0000003100012345678", "0000003200066655544", monthsAgo(24)},
	{"20100000007", 80000.00, "0000003100012345678", "0000003200011111111", monthsAgo(2)},
}

// Build assembles the scenario relative to now, expressed in clock.Zone.
func Build(now time.Time) Scenario {
	now = now.In(clock.Zone)
	s := Scenario{Now: now}

	ids := make(map[string]string, len(olderCompanies)+len(recentCompanies))
	for _, group := range [][]companySeed{olderCompanies, recentCompanies} {
		for _, c := range group {
			id := uuid.NewString()
			ids[c.cuit] = id
			s.Companies = append(s.Companies, companies.Company{
				ID:           id,
				CUIT:         c.cuit,
				BusinessName: c.name,
				CompanyType:  c.kind,
				AdhesionDate: c.at(now),
				CreatedAt:    now,
				UpdatedAt:    now,
			})
		}
	}

	for _, t := range transferSeeds {
		s.Transfers = append(s.Transfers, transfers.Transfer{
			ID:            uuid.NewString(),
			CompanyID:     ids[t.cuit],
			Amount:        t.amount,
			DebitAccount:  t.debit,
			CreditAccount: t.credit,
			TransferDate:  t.at(now),
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	return s
}

// Summary describes what the listing endpoints should return for s.
type Summary struct {
	Companies                 int
	JoinedLastMonth           int
	Transfers                 int
	TransfersLastMonth        int
	CompaniesWithTransfers    int
	TransfersForWithTransfers int
}

// Summarize counts the scenario against the same lower bounds the services
// use.
func (s Scenario) Summarize() Summary {
	joinedSince := companies.JoinedSince(s.Now)
	withTransfersSince := companies.TransfersSince(s.Now)
	lastMonthSince := transfers.LastMonthSince(s.Now)

	sum := Summary{Companies: len(s.Companies), Transfers: len(s.Transfers)}
	for _, c := range s.Companies {
		if !c.AdhesionDate.Before(joinedSince) {
			sum.JoinedLastMonth++
		}
	}
	active := make(map[string]struct{})
	for _, t := range s.Transfers {
		if !t.TransferDate.Before(lastMonthSince) {
			sum.TransfersLastMonth++
		}
		if !t.TransferDate.Before(withTransfersSince) {
			sum.TransfersForWithTransfers++
			active[t.CompanyID] = struct{}{}
		}
	}
	sum.CompaniesWithTransfers = len(active)
	return sum
}

const truncateQuery = `TRUNCATE TABLE transfers, companies`

var (
	companyColumns  = []string{"id", "cuit", "business_name", "company_type", "adhesion_date", "created_at", "updated_at"}
	transferColumns = []string{"id", "company_id", "amount", "debit_account", "credit_account", "transfer_date", "created_at", "updated_at"}
)

// Load replaces the contents of both tables with s inside tx.
func Load(ctx context.Context, tx pgx.Tx, s Scenario) error {
	if _, err := tx.Exec(ctx, truncateQuery); err != nil {
		return fmt.Errorf("seed: truncate: %w", err)
	}

	companyRows := make([][]any, 0, len(s.Companies))
	for _, c := range s.Companies {
		companyRows = append(companyRows, []any{c.ID, c.CUIT, c.BusinessName, string(c.CompanyType), c.AdhesionDate, c.CreatedAt, c.UpdatedAt})
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"companies"}, companyColumns, pgx.CopyFromRows(companyRows)); err != nil {
		return fmt.Errorf("seed: copy companies: %w", err)
	}

	transferRows := make([][]any, 0, len(s.Transfers))
	for _, t := range s.Transfers {
		transferRows = append(transferRows, []any{t.ID, t.CompanyID, t.Amount, t.DebitAccount, t.CreditAccount, t.TransferDate, t.CreatedAt, t.UpdatedAt})
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"transfers"}, transferColumns, pgx.CopyFromRows(transferRows)); err != nil {
		return fmt.Errorf("seed: copy transfers: %w", err)
	}
	return nil
}

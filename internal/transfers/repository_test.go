package transfers

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interbanking/interbanking-api/internal/platform/clock"
)

func newPgxRepo(t *testing.T) (Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewRepository(mock), mock
}

func TestRepositoryCreate(t *testing.T) {
	repo, mock := newPgxRepo(t)
	when := time.Date(2025, 11, 14, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(insertTransferQuery)).
		WithArgs(pgxmock.AnyArg(), "c-1", 1500.5, "111", "222", when, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	created, err := repo.Create(context.Background(), Transfer{
		CompanyID: "c-1", Amount: 1500.5, DebitAccount: "111", CreditAccount: "222", TransferDate: when,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreateWrapsError(t *testing.T) {
	repo, mock := newPgxRepo(t)
	boom := errors.New("boom")

	mock.ExpectExec(regexp.QuoteMeta(insertTransferQuery)).WillReturnError(boom)

	_, err := repo.Create(context.Background(), Transfer{CompanyID: "c-1", Amount: 1})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "transfers: insert")
}

func TestRepositoryListSince(t *testing.T) {
	repo, mock := newPgxRepo(t)
	since := time.Date(2025, 10, 14, 18, 30, 0, 0, clock.Zone)
	first := time.Date(2025, 11, 13, 9, 0, 0, 0, time.UTC)
	second := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(listSinceQuery)).
		WithArgs(since).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "company_id", "amount", "debit_account", "credit_account", "transfer_date", "created_at", "updated_at",
		}).
			AddRow("t-2", "c-1", 50000.0, "111", "222", first, first, first).
			AddRow("t-1", "missing", 0.01, "333", "444", second, second, second))

	list, err := repo.ListSince(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "t-2", list[0].ID)
	assert.Equal(t, "missing", list[1].CompanyID)
	assert.Equal(t, 0.01, list[1].Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListSinceQueryError(t *testing.T) {
	repo, mock := newPgxRepo(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery(regexp.QuoteMeta(listSinceQuery)).WillReturnError(boom)

	_, err := repo.ListSince(context.Background(), time.Now())
	assert.ErrorIs(t, err, boom)
}

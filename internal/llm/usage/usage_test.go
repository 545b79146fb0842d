package usage

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &Store{db: mock}, mock
}

func TestUseCallDeductsOneToken(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("UPDATE llm_usage SET").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), "user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, store.UseCall(context.Background(), "user-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUseCallReturnsQuotaExhaustedWhenNoRowsUpdated(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("UPDATE llm_usage SET").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), "user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := store.UseCall(context.Background(), "user-1")
	require.ErrorIs(t, err, ErrQuotaExhausted)
}

func TestEnsureUserReportsCreatedOnFreshRow(t *testing.T) {
	store, mock := newMockStore(t)
	rows := pgxmock.NewRows([]string{"uid"}).AddRow("user-1")
	mock.ExpectQuery("INSERT INTO llm_usage").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(rows)

	created, err := store.EnsureUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.True(t, created)
}

func TestEnsureUserReportsNotCreatedOnConflict(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("INSERT INTO llm_usage").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	created, err := store.EnsureUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.False(t, created)
}

func TestMeterChargeCreatesRowAndRetriesOnFirstUse(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("UPDATE llm_usage SET").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), "new-user").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	rows := pgxmock.NewRows([]string{"uid"}).AddRow("new-user")
	mock.ExpectQuery("INSERT INTO llm_usage").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(rows)
	mock.ExpectExec("UPDATE llm_usage SET").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), "new-user").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	meter := NewMeter(store)
	require.NoError(t, meter.Charge(context.Background(), "new-user"))
}

func TestMeterChargeReturnsQuotaExhaustedWhenRowExists(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("UPDATE llm_usage SET").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), "user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery("INSERT INTO llm_usage").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	meter := NewMeter(store)
	err := meter.Charge(context.Background(), "user-1")
	require.ErrorIs(t, err, ErrQuotaExhausted)
}

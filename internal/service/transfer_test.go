package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/boddenberg/finboard-bfa-go/internal/domain"
	"github.com/boddenberg/finboard-bfa-go/internal/infra/observability"
	"github.com/boddenberg/finboard-bfa-go/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testAccounts() []domain.Account {
	return []domain.Account{
		{ID: "A", Name: "Checking", Type: domain.AccountTypeChecking, Balance: dec("100.00"), LastFour: "4892"},
		{ID: "B", Name: "Savings", Type: domain.AccountTypeSavings, Balance: dec("250.00"), LastFour: "7234"},
		{ID: "C", Name: "Credit Card", Type: domain.AccountTypeCredit, Balance: dec("-40.00"), LastFour: "8901"},
	}
}

func newTransfer(revertDelay time.Duration) *service.TransferService {
	store := &stubStore{accounts: testAccounts()}
	return service.NewTransferService(store, revertDelay, observability.NewMetrics(), zap.NewNop())
}

func TestTransfer_StartsIdle(t *testing.T) {
	svc := newTransfer(time.Second)

	status := svc.Status(context.Background())
	assert.Equal(t, domain.TransferIdle, status.State)
	assert.Nil(t, status.Confirmation)
}

func TestTransfer_BeginEntersFormEntry(t *testing.T) {
	svc := newTransfer(time.Second)

	status := svc.Begin(context.Background())
	assert.Equal(t, domain.TransferFormEntry, status.State)
	assert.Equal(t, domain.TransferRequest{}, status.Form)
}

func TestTransfer_SubmitMissingFields(t *testing.T) {
	svc := newTransfer(time.Second)
	svc.Begin(context.Background())

	cases := []domain.TransferRequest{
		{ToAccountID: "B", Amount: "10"},
		{FromAccountID: "A", Amount: "10"},
		{FromAccountID: "A", ToAccountID: "B"},
	}
	for _, req := range cases {
		_, err := svc.Submit(context.Background(), req)
		var validation *domain.ErrValidation
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "Please fill in all required fields", validation.Message)
		assert.Equal(t, domain.TransferFormEntry, svc.Status(context.Background()).State)
	}
}

func TestTransfer_SubmitSameAccountRegardlessOfBalance(t *testing.T) {
	svc := newTransfer(time.Second)
	svc.Begin(context.Background())

	_, err := svc.Submit(context.Background(), domain.TransferRequest{
		FromAccountID: "A", ToAccountID: "A", Amount: "10",
	})
	var validation *domain.ErrValidation
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Cannot transfer to the same account", validation.Message)
}

func TestTransfer_SubmitNonPositiveAmount(t *testing.T) {
	svc := newTransfer(time.Second)
	svc.Begin(context.Background())

	for _, amount := range []string{"0", "-5", "not-a-number"} {
		_, err := svc.Submit(context.Background(), domain.TransferRequest{
			FromAccountID: "A", ToAccountID: "B", Amount: amount,
		})
		var validation *domain.ErrValidation
		require.ErrorAs(t, err, &validation, "amount %q", amount)
		assert.Equal(t, "Transfer amount must be greater than zero", validation.Message)
	}
}

func TestTransfer_SubmitInsufficientFunds(t *testing.T) {
	svc := newTransfer(time.Second)
	svc.Begin(context.Background())

	_, err := svc.Submit(context.Background(), domain.TransferRequest{
		FromAccountID: "A", ToAccountID: "B", Amount: "150.00",
	})
	var insufficient *domain.ErrInsufficientFunds
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Available.Equal(dec("100.00")))
	assert.True(t, insufficient.Required.Equal(dec("150.00")))
	assert.Equal(t, "Insufficient funds in source account", err.Error())
}

func TestTransfer_FailedSubmitRetainsFields(t *testing.T) {
	svc := newTransfer(time.Second)
	svc.Begin(context.Background())

	req := domain.TransferRequest{FromAccountID: "A", ToAccountID: "B", Amount: "150.00", Note: "rent"}
	_, err := svc.Submit(context.Background(), req)
	require.Error(t, err)

	status := svc.Status(context.Background())
	assert.Equal(t, domain.TransferFormEntry, status.State)
	assert.Equal(t, req, status.Form)
}

func TestTransfer_SubmitExactBalanceProjectsZero(t *testing.T) {
	svc := newTransfer(time.Second)
	svc.Begin(context.Background())

	status, err := svc.Submit(context.Background(), domain.TransferRequest{
		FromAccountID: "A", ToAccountID: "B", Amount: "100.00",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TransferPendingConfirmation, status.State)
	require.NotNil(t, status.Confirmation)
	assert.Equal(t, "A", status.Confirmation.From.ID)
	assert.Equal(t, "B", status.Confirmation.To.ID)
	assert.True(t, status.Confirmation.Amount.Equal(dec("100.00")))
	assert.True(t, status.Confirmation.ProjectedBalance.IsZero())
	assert.NotEmpty(t, status.Confirmation.AttemptID)
}

func TestTransfer_CancelPreservesFields(t *testing.T) {
	svc := newTransfer(time.Second)
	svc.Begin(context.Background())

	req := domain.TransferRequest{FromAccountID: "A", ToAccountID: "B", Amount: "25.00", Note: "books"}
	_, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)

	status, err := svc.Cancel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.TransferFormEntry, status.State)
	assert.Equal(t, req, status.Form)
	assert.Nil(t, status.Confirmation)
}

func TestTransfer_ConfirmDoesNotMutateBalances(t *testing.T) {
	store := &stubStore{accounts: testAccounts()}
	svc := service.NewTransferService(store, time.Second, observability.NewMetrics(), zap.NewNop())
	svc.Begin(context.Background())

	_, err := svc.Submit(context.Background(), domain.TransferRequest{
		FromAccountID: "A", ToAccountID: "B", Amount: "60.00",
	})
	require.NoError(t, err)

	status, err := svc.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.TransferConfirmed, status.State)

	from, err := store.GetAccount(context.Background(), "A")
	require.NoError(t, err)
	assert.True(t, from.Balance.Equal(dec("100.00")), "source balance must stay untouched")
}

func TestTransfer_AutoRevertClearsEverything(t *testing.T) {
	svc := newTransfer(40 * time.Millisecond)
	svc.Begin(context.Background())

	_, err := svc.Submit(context.Background(), domain.TransferRequest{
		FromAccountID: "A", ToAccountID: "B", Amount: "10.00", Note: "lunch",
	})
	require.NoError(t, err)
	_, err = svc.Confirm(context.Background())
	require.NoError(t, err)

	// Right before the delay elapses the workflow still shows Confirmed.
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, domain.TransferConfirmed, svc.Status(context.Background()).State)

	time.Sleep(80 * time.Millisecond)
	status := svc.Status(context.Background())
	assert.Equal(t, domain.TransferIdle, status.State)
	assert.Equal(t, domain.TransferRequest{}, status.Form)
	assert.Nil(t, status.Confirmation)
}

func TestTransfer_ReentryCancelsPendingRevert(t *testing.T) {
	svc := newTransfer(40 * time.Millisecond)
	svc.Begin(context.Background())

	_, err := svc.Submit(context.Background(), domain.TransferRequest{
		FromAccountID: "A", ToAccountID: "B", Amount: "10.00",
	})
	require.NoError(t, err)
	_, err = svc.Confirm(context.Background())
	require.NoError(t, err)

	// Re-enter before the revert fires; the stale timer must not reset the
	// new attempt back to Idle.
	svc.Begin(context.Background())
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, domain.TransferFormEntry, svc.Status(context.Background()).State)
}

func TestTransfer_EventsRejectedInWrongState(t *testing.T) {
	svc := newTransfer(time.Second)

	var invalidState *domain.ErrInvalidState

	_, err := svc.Confirm(context.Background())
	require.ErrorAs(t, err, &invalidState)
	assert.Equal(t, domain.TransferIdle, invalidState.State)

	_, err = svc.Cancel(context.Background())
	require.ErrorAs(t, err, &invalidState)

	_, err = svc.Submit(context.Background(), domain.TransferRequest{
		FromAccountID: "A", ToAccountID: "B", Amount: "10.00",
	})
	require.ErrorAs(t, err, &invalidState)

	svc.Begin(context.Background())
	_, err = svc.Confirm(context.Background())
	require.ErrorAs(t, err, &invalidState)
	assert.Equal(t, domain.TransferFormEntry, invalidState.State)
}

func TestTransfer_UnknownSourceAccount(t *testing.T) {
	svc := newTransfer(time.Second)
	svc.Begin(context.Background())

	_, err := svc.Submit(context.Background(), domain.TransferRequest{
		FromAccountID: "missing", ToAccountID: "B", Amount: "10.00",
	})
	var notFound *domain.ErrNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "account", notFound.Resource)
}

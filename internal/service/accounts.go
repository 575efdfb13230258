package service

import (
	"context"

	"github.com/boddenberg/finboard-bfa-go/internal/domain"
	"github.com/boddenberg/finboard-bfa-go/internal/infra/observability"
	"github.com/boddenberg/finboard-bfa-go/internal/port"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var accountsTracer = otel.Tracer("service/accounts")

// AccountsService serves the account snapshot and derived views.
type AccountsService struct {
	store   port.LedgerStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewAccountsService creates the accounts service.
func NewAccountsService(store port.LedgerStore, metrics *observability.Metrics, logger *zap.Logger) *AccountsService {
	return &AccountsService{store: store, metrics: metrics, logger: logger}
}

// Summary returns every account plus the total balance across them.
// Credit balances are negative and reduce the total.
func (s *AccountsService) Summary(ctx context.Context) (*domain.AccountsSummary, error) {
	ctx, span := accountsTracer.Start(ctx, "AccountsService.Summary")
	defer span.End()

	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}

	return &domain.AccountsSummary{Accounts: accounts, TotalBalance: total}, nil
}

// TransferCandidates returns the accounts selectable in the transfer form.
// Only accounts holding a positive balance can fund a transfer, and the
// destination list excludes the selected source. With no source selected,
// every account is a valid destination.
func (s *AccountsService) TransferCandidates(ctx context.Context, fromID string) (*domain.TransferCandidates, error) {
	ctx, span := accountsTracer.Start(ctx, "AccountsService.TransferCandidates")
	defer span.End()
	span.SetAttributes(attribute.String("transfer.from", fromID))

	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	candidates := &domain.TransferCandidates{
		From: make([]domain.Account, 0, len(accounts)),
		To:   make([]domain.Account, 0, len(accounts)),
	}
	for _, a := range accounts {
		if a.Balance.IsPositive() {
			candidates.From = append(candidates.From, a)
		}
		if a.ID != fromID {
			candidates.To = append(candidates.To, a)
		}
	}
	return candidates, nil
}

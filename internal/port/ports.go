// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/boddenberg/finboard-bfa-go/internal/domain"
)

// LedgerStore holds the ledger snapshot: accounts, transactions and bills.
// Implemented by the in-memory snapshot adapter. Reads return copies so the
// snapshot cannot be mutated through a result slice; MarkBillPaid is the
// only mutation and affects process memory only.
type LedgerStore interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)

	ListTransactions(ctx context.Context) ([]domain.Transaction, error)

	ListBills(ctx context.Context) ([]domain.Bill, error)
	MarkBillPaid(ctx context.Context, billID string) (*domain.Bill, error)
}

// Cache provides generic read-through caching with TTL. Expiry is the
// only invalidation the services need; concrete caches may offer more.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
}

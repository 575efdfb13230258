// Package memstore implements the ledger store over an in-memory snapshot.
// The snapshot is loaded once at startup, either from the built-in seed or
// from a JSON file, and is never persisted back.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/boddenberg/finboard-bfa-go/internal/domain"

	"go.uber.org/zap"
)

// Store holds the ledger snapshot. Accounts and transactions are read-only;
// bills allow a single mutation (mark as paid) guarded by the mutex.
type Store struct {
	mu           sync.RWMutex
	accounts     []domain.Account
	transactions []domain.Transaction
	bills        []domain.Bill
	logger       *zap.Logger
}

// snapshotFile is the JSON layout accepted by NewFromFile.
type snapshotFile struct {
	Accounts     []domain.Account     `json:"accounts"`
	Transactions []domain.Transaction `json:"transactions"`
	Bills        []domain.Bill        `json:"bills"`
}

// New creates a store populated with the built-in seed snapshot.
func New(logger *zap.Logger) *Store {
	s := &Store{
		accounts:     seedAccounts(),
		transactions: seedTransactions(),
		bills:        seedBills(),
		logger:       logger,
	}
	logger.Info("ledger snapshot loaded",
		zap.String("source", "seed"),
		zap.Int("accounts", len(s.accounts)),
		zap.Int("transactions", len(s.transactions)),
		zap.Int("bills", len(s.bills)),
	)
	return s
}

// NewFromFile creates a store from a JSON snapshot file.
func NewFromFile(path string, logger *zap.Logger) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap snapshotFile
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}

	s := &Store{
		accounts:     snap.Accounts,
		transactions: snap.Transactions,
		bills:        snap.Bills,
		logger:       logger,
	}
	logger.Info("ledger snapshot loaded",
		zap.String("source", path),
		zap.Int("accounts", len(s.accounts)),
		zap.Int("transactions", len(s.transactions)),
		zap.Int("bills", len(s.bills)),
	)
	return s, nil
}

// Counts returns snapshot sizes for the health endpoint.
func (s *Store) Counts() (accounts, transactions, bills int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts), len(s.transactions), len(s.bills)
}

func (s *Store) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Account, len(s.accounts))
	copy(out, s.accounts)
	return out, nil
}

func (s *Store) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.accounts {
		if a.ID == accountID {
			acct := a
			return &acct, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "account", ID: accountID}
}

func (s *Store) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out, nil
}

func (s *Store) ListBills(ctx context.Context) ([]domain.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Bill, len(s.bills))
	copy(out, s.bills)
	return out, nil
}

// MarkBillPaid flips a bill's status to paid. The change lives in process
// memory only; restarting the service restores the original snapshot.
func (s *Store) MarkBillPaid(ctx context.Context, billID string) (*domain.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.bills {
		if s.bills[i].ID == billID {
			s.bills[i].Status = domain.BillPaid
			bill := s.bills[i]
			s.logger.Info("bill marked as paid",
				zap.String("bill_id", billID),
				zap.String("name", bill.Name),
			)
			return &bill, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "bill", ID: billID}
}

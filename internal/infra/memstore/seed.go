package memstore

import (
	"github.com/boddenberg/finboard-bfa-go/internal/domain"

	"github.com/shopspring/decimal"
)

// Built-in seed snapshot. Matches the fixture the dashboard frontend ships
// with, so both sides render the same data out of the box. Transactions are
// kept in date-descending order; the recent-transactions view slices this
// order directly.

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedAccounts() []domain.Account {
	return []domain.Account{
		{ID: "1", Name: "Primary Checking", Type: domain.AccountTypeChecking, Balance: dec("4532.82"), LastFour: "4892", Icon: "wallet"},
		{ID: "2", Name: "Savings Account", Type: domain.AccountTypeSavings, Balance: dec("12847.50"), LastFour: "7234", Icon: "piggy-bank"},
		{ID: "3", Name: "Credit Card", Type: domain.AccountTypeCredit, Balance: dec("-1243.16"), LastFour: "8901", Icon: "credit-card"},
	}
}

func seedTransactions() []domain.Transaction {
	return []domain.Transaction{
		{ID: "1", Date: "2025-10-25", Description: "Grocery Store", Amount: dec("-127.45"), Category: "Food & Dining", Status: domain.TransactionCompleted, AccountID: "1"},
		{ID: "2", Date: "2025-10-25", Description: "Salary Deposit", Amount: dec("3500.00"), Category: "Income", Status: domain.TransactionCompleted, AccountID: "1"},
		{ID: "3", Date: "2025-10-24", Description: "Electric Company", Amount: dec("-89.23"), Category: "Utilities", Status: domain.TransactionCompleted, AccountID: "1"},
		{ID: "4", Date: "2025-10-24", Description: "Online Shopping", Amount: dec("-234.99"), Category: "Shopping", Status: domain.TransactionCompleted, AccountID: "3"},
		{ID: "5", Date: "2025-10-23", Description: "Gas Station", Amount: dec("-52.10"), Category: "Transportation", Status: domain.TransactionCompleted, AccountID: "1"},
		{ID: "6", Date: "2025-10-23", Description: "Restaurant", Amount: dec("-68.50"), Category: "Food & Dining", Status: domain.TransactionCompleted, AccountID: "3"},
		{ID: "7", Date: "2025-10-22", Description: "Gym Membership", Amount: dec("-49.99"), Category: "Health & Fitness", Status: domain.TransactionCompleted, AccountID: "1"},
		{ID: "8", Date: "2025-10-22", Description: "Transfer to Savings", Amount: dec("-500.00"), Category: "Transfer", Status: domain.TransactionCompleted, AccountID: "1"},
		{ID: "9", Date: "2025-10-21", Description: "Coffee Shop", Amount: dec("-12.75"), Category: "Food & Dining", Status: domain.TransactionPending, AccountID: "1"},
		{ID: "10", Date: "2025-10-21", Description: "Streaming Service", Amount: dec("-14.99"), Category: "Entertainment", Status: domain.TransactionCompleted, AccountID: "3"},
	}
}

func seedBills() []domain.Bill {
	return []domain.Bill{
		{ID: "1", Name: "Rent Payment", Amount: dec("1850.00"), DueDate: "2025-11-01", Status: domain.BillDue, Category: "Housing"},
		{ID: "2", Name: "Internet Service", Amount: dec("79.99"), DueDate: "2025-11-05", Status: domain.BillDue, Category: "Utilities"},
		{ID: "3", Name: "Car Insurance", Amount: dec("142.50"), DueDate: "2025-10-28", Status: domain.BillPaid, Category: "Insurance"},
		{ID: "4", Name: "Phone Bill", Amount: dec("65.00"), DueDate: "2025-11-10", Status: domain.BillDue, Category: "Utilities"},
		{ID: "5", Name: "Gym Membership", Amount: dec("49.99"), DueDate: "2025-10-30", Status: domain.BillDue, Category: "Health"},
	}
}

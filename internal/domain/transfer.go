package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vporoshin/bank-ledger/pkg/moneypkg"
)

var (
	// ErrInvalidAmount indicates a zero, negative or unparsable amount.
	ErrInvalidAmount = errors.New("amount must be a positive decimal")
	// ErrSameAccount indicates a transfer from an account to itself.
	ErrSameAccount = errors.New("cannot transfer to the same account")
	// ErrInsufficientFunds indicates that the debit would drive the balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrFromAccountNotFound indicates that the debited account is not found.
	ErrFromAccountNotFound = errors.New("from account not found")
	// ErrToAccountNotFound indicates that the credited account is not found.
	ErrToAccountNotFound = errors.New("to account not found")
	// ErrTransferNotFound indicates that the transfer record is not found.
	ErrTransferNotFound = errors.New("transfer not found")
)

// Transfer holds the record of a completed movement between two accounts.
type Transfer struct {
	ID            int64          `json:"id"`
	FromAccountID uuid.UUID      `json:"from_account_id"`
	ToAccountID   uuid.UUID      `json:"to_account_id"`
	Amount        moneypkg.Money `json:"amount"` // always positive
	CreatedAt     time.Time      `json:"created_at"`
}

// CreateTransferParams is the input data for a transfer.
type CreateTransferParams struct {
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Amount        moneypkg.Money
}

// ListTransfersParams is the input data to page through transfers touching an account.
type ListTransfersParams struct {
	AccountID uuid.UUID
	Limit     int32
	Offset    int32
}

// TransferResult carries both post-transfer balances along with the record.
type TransferResult struct {
	Transfer    Transfer       `json:"transfer"`
	FromBalance moneypkg.Money `json:"from_balance"`
	ToBalance   moneypkg.Money `json:"to_balance"`
}

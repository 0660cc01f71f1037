// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vporoshin/bank-ledger/pkg/moneypkg"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateAccount indicates that an account with the given id already exists.
	ErrDuplicateAccount = errors.New("account id already exists")
	// ErrInvalidName indicates an empty account name.
	ErrInvalidName = errors.New("account name must not be empty")
	// ErrInvalidBalance indicates a negative or unparsable balance.
	ErrInvalidBalance = errors.New("invalid balance")
)

// Account holds a named balance.
//
// The id is assigned at creation and never changes. The stored balance
// is never negative; every mutation goes through the account
// repository's ApplyDelta.
type Account struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Balance   moneypkg.Money `json:"balance"`
	CreatedAt time.Time      `json:"created_at"`
}

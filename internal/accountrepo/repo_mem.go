package accountrepo

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vporoshin/bank-ledger/internal/domain"
	"github.com/vporoshin/bank-ledger/pkg/errorspkg"
	"github.com/vporoshin/bank-ledger/pkg/moneypkg"
)

// RepoMem is an in-memory account repository.
//
// All mutations run under the write lock, which serializes ApplyDelta
// calls store-wide and therefore per account id as well. Reads take a
// snapshot under the read lock, so a listing never observes a
// half-applied transfer.
type RepoMem struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]domain.Account
	order    []uuid.UUID
}

// NewRepoMem returns an empty in-memory account repository.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		accounts: make(map[uuid.UUID]domain.Account),
	}
}

// Create stores a new account and then returns it.
func (r *RepoMem) Create(ctx context.Context, id uuid.UUID, name string, balance moneypkg.Money) (domain.Account, error) {
	if name == "" {
		return domain.Account{}, domain.ErrInvalidName
	}

	if balance.IsNegative() {
		return domain.Account{}, domain.ErrInvalidBalance
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; ok {
		return domain.Account{}, domain.ErrDuplicateAccount
	}

	a := domain.Account{
		ID:        id,
		Name:      name,
		Balance:   balance,
		CreatedAt: time.Now().UTC(),
	}

	r.accounts[id] = a
	r.order = append(r.order, id)

	return a, nil
}

// Get returns the account with the given id.
func (r *RepoMem) Get(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return a, nil
}

// List returns accounts in creation order, optionally keeping only
// those whose name contains nameFilter (case-insensitive). A limit
// below 1 means no limit.
func (r *RepoMem) List(ctx context.Context, nameFilter string, limit, offset int32) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filter := strings.ToLower(nameFilter)

	items := []domain.Account{}

	for _, id := range r.order {
		a := r.accounts[id]
		if filter != "" && !strings.Contains(strings.ToLower(a.Name), filter) {
			continue
		}

		items = append(items, a)
	}

	if offset > 0 {
		if int(offset) >= len(items) {
			return []domain.Account{}, nil
		}

		items = items[offset:]
	}

	if limit > 0 && int(limit) < len(items) {
		items = items[:limit]
	}

	return items, nil
}

// ApplyDelta atomically adds delta to the stored balance and returns
// the updated account. A debit past zero is rejected without change.
func (r *RepoMem) ApplyDelta(ctx context.Context, id uuid.UUID, delta moneypkg.Money) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	balance, err := a.Balance.Add(delta)
	if err != nil {
		return domain.Account{}, errorspkg.ErrInternal
	}

	if balance.IsNegative() {
		return domain.Account{}, domain.ErrInsufficientFunds
	}

	a.Balance = balance
	r.accounts[id] = a

	return a, nil
}

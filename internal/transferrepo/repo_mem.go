package transferrepo

import (
	"context"
	"sync"
	"time"

	"github.com/vporoshin/bank-ledger/internal/domain"
)

// RepoMem is an in-memory transfer record repository.
type RepoMem struct {
	mu        sync.RWMutex
	transfers []domain.Transfer
	nextID    int64
}

// NewRepoMem returns an empty in-memory transfer repository.
func NewRepoMem() *RepoMem {
	return &RepoMem{nextID: 1}
}

// Create records a completed transfer and then returns it.
func (r *RepoMem) Create(ctx context.Context, arg domain.CreateTransferParams) (domain.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := domain.Transfer{
		ID:            r.nextID,
		FromAccountID: arg.FromAccountID,
		ToAccountID:   arg.ToAccountID,
		Amount:        arg.Amount,
		CreatedAt:     time.Now().UTC(),
	}

	r.nextID++
	r.transfers = append(r.transfers, t)

	return t, nil
}

// Get returns the transfer with the given id.
func (r *RepoMem) Get(ctx context.Context, id int64) (domain.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.transfers {
		if t.ID == id {
			return t, nil
		}
	}

	return domain.Transfer{}, domain.ErrTransferNotFound
}

// List returns the transfers touching the given account in id order.
func (r *RepoMem) List(ctx context.Context, arg domain.ListTransfersParams) ([]domain.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := []domain.Transfer{}

	for _, t := range r.transfers {
		if t.FromAccountID == arg.AccountID || t.ToAccountID == arg.AccountID {
			items = append(items, t)
		}
	}

	if arg.Offset > 0 {
		if int(arg.Offset) >= len(items) {
			return []domain.Transfer{}, nil
		}

		items = items[arg.Offset:]
	}

	if arg.Limit > 0 && int(arg.Limit) < len(items) {
		items = items[:arg.Limit]
	}

	return items, nil
}

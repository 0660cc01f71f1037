// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/google/uuid"

	"github.com/vporoshin/bank-ledger/internal/domain"
	"github.com/vporoshin/bank-ledger/pkg/moneypkg"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, id uuid.UUID, name string, balance moneypkg.Money) (domain.Account, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Account, error)
	List(ctx context.Context, nameFilter string, limit, offset int32) ([]domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create creates and returns an account. A nil id means the service
// assigns a fresh one.
func (s *Service) Create(ctx context.Context, id uuid.UUID, name string, balance moneypkg.Money) (domain.Account, error) {
	if name == "" {
		return domain.Account{}, domain.ErrInvalidName
	}

	if balance.IsNegative() {
		return domain.Account{}, domain.ErrInvalidBalance
	}

	if id == uuid.Nil {
		id = uuid.New()
	}

	account, err := s.repo.Create(ctx, id, name, balance)
	if err != nil {
		return account, err
	}

	return account, nil
}

// Get returns account for the given account ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	return account, nil
}

// List returns a page of accounts whose name contains nameFilter;
// an empty filter matches every account.
func (s *Service) List(ctx context.Context, nameFilter string, pageSize, pageID int32) ([]domain.Account, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	accounts, err := s.repo.List(ctx, nameFilter, limit, offset)
	if err != nil {
		return nil, err
	}

	return accounts, err
}

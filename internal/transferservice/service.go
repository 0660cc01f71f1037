// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vporoshin/bank-ledger/internal/domain"
	"github.com/vporoshin/bank-ledger/pkg/errorspkg"
	"github.com/vporoshin/bank-ledger/pkg/moneypkg"
)

// AccountRepo provides the account store interface needed by the
// transfer service layer. ApplyDelta must be atomic per account id.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type AccountRepo interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Account, error)
	ApplyDelta(ctx context.Context, id uuid.UUID, delta moneypkg.Money) (domain.Account, error)
}

// HistoryRepo records completed transfers.
type HistoryRepo interface {
	Create(ctx context.Context, arg domain.CreateTransferParams) (domain.Transfer, error)
	Get(ctx context.Context, id int64) (domain.Transfer, error)
	List(ctx context.Context, arg domain.ListTransfersParams) ([]domain.Transfer, error)
}

const defaultCreditBackoff = 50 * time.Millisecond

// Service facilitates transfer service layer logic. It holds no
// per-transfer state, so one instance serves concurrent callers.
type Service struct {
	accounts      AccountRepo
	history       HistoryRepo
	creditBackoff time.Duration
}

// New returns transfer service struct to manage transfer bussines logic.
func New(ar AccountRepo, hr HistoryRepo) *Service {
	return &Service{
		accounts:      ar,
		history:       hr,
		creditBackoff: defaultCreditBackoff,
	}
}

// Transfer debits the source account and credits the destination
// atomically with respect to each account.
//
// The two deltas are sequential single-key mutations rather than one
// cross-account transaction, so correctness rests on two rules: the
// debit is the only step that can fail for business reasons, and once
// it has committed the credit is retried past transient storage faults
// rather than abandoned (a credit cannot breach the non-negativity
// invariant, so it has no legitimate failure mode).
func (s *Service) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferResult

	if !arg.Amount.IsPositive() {
		return result, domain.ErrInvalidAmount
	}

	if arg.FromAccountID == arg.ToAccountID {
		return result, domain.ErrSameAccount
	}

	if _, err := s.accounts.Get(ctx, arg.FromAccountID); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return result, domain.ErrFromAccountNotFound
		}

		return result, err
	}

	if _, err := s.accounts.Get(ctx, arg.ToAccountID); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return result, domain.ErrToAccountNotFound
		}

		return result, err
	}

	fromAccount, err := s.accounts.ApplyDelta(ctx, arg.FromAccountID, arg.Amount.Neg())
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return result, domain.ErrFromAccountNotFound
		}

		return result, err
	}

	toAccount, err := s.credit(ctx, arg.ToAccountID, arg.Amount)
	if err != nil {
		// The debit is already durable; this leaves the moved amount
		// unaccounted for and needs operator attention.
		l.Error().Err(err).
			Str("from_account_id", arg.FromAccountID.String()).
			Str("to_account_id", arg.ToAccountID.String()).
			Str("amount", arg.Amount.String()).
			Msg("credit failed after committed debit")

		return result, errorspkg.ErrInternal
	}

	transfer, err := s.history.Create(ctx, arg)
	if err != nil {
		// Both balances are settled; a missing history row does not
		// fail the transfer.
		l.Error().Err(err).Msg("record transfer")
	}

	result.Transfer = transfer
	result.FromBalance = fromAccount.Balance
	result.ToBalance = toAccount.Balance

	return result, nil
}

// credit applies the positive delta, retrying while the store reports
// a transient fault. It deliberately ignores ctx cancellation: the
// matching debit has committed, so giving up here would destroy value.
func (s *Service) credit(ctx context.Context, id uuid.UUID, amount moneypkg.Money) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	for {
		account, err := s.accounts.ApplyDelta(ctx, id, amount)
		if err == nil {
			return account, nil
		}

		if !errors.Is(err, errorspkg.ErrUnavailable) {
			return domain.Account{}, err
		}

		l.Warn().Err(err).
			Str("to_account_id", id.String()).
			Msg("credit hit transient storage fault, retrying")

		time.Sleep(s.creditBackoff)
	}
}

// Get returns the transfer record with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Transfer, error) {
	return s.history.Get(ctx, id)
}

// List returns the transfer records touching the given account.
func (s *Service) List(ctx context.Context, arg domain.ListTransfersParams) ([]domain.Transfer, error) {
	return s.history.List(ctx, arg)
}

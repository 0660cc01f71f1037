// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/vporoshin/bank-ledger/internal/domain"
	"github.com/vporoshin/bank-ledger/pkg/dbpkg"
	"github.com/vporoshin/bank-ledger/pkg/errorspkg"
	"github.com/vporoshin/bank-ledger/pkg/moneypkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (id, name, balance)
VALUES
    ($1, $2, $3)
RETURNING id, name, balance, created_at
`

// Create stores a new account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, id uuid.UUID, name string, balance moneypkg.Money) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, id, name, balance)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_pkey":
				return a, domain.ErrDuplicateAccount
			case "accounts_balance_check":
				return a, domain.ErrInvalidBalance
			case "accounts_name_check":
				return a, domain.ErrInvalidName
			}
		}

		return a, storeErr(err)
	}

	return a, nil
}

const getQuery = `
SELECT
	id, name, balance, created_at
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, storeErr(err)
	}

	return a, nil
}

const listQuery = `
SELECT
	id, name, balance, created_at
FROM accounts
WHERE $1 = '' OR name ILIKE '%' || $1 || '%'
ORDER BY created_at, id
LIMIT $2 OFFSET $3
`

// List returns accounts ordered by creation, optionally keeping only
// those whose name contains nameFilter (case-insensitive).
func (r *RepoPGS) List(ctx context.Context, nameFilter string, limit, offset int32) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, nameFilter, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, storeErr(err)
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Balance, &a.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, storeErr(err)
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, storeErr(err)
	}

	return items, nil
}

const applyDeltaQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE id = $2
RETURNING id, name, balance, created_at
`

// ApplyDelta atomically adds delta to the stored balance and returns
// the updated account.
//
// The balance check constraint rejects a debit past zero, so the whole
// read-modify-write is one conditional statement and concurrent deltas
// on the same id serialize on the row lock.
func (r *RepoPGS) ApplyDelta(ctx context.Context, id uuid.UUID, delta moneypkg.Money) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, applyDeltaQuery, delta, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientFunds
			}
		}

		return a, storeErr(err)
	}

	return a, nil
}

// storeErr separates transient connection faults, which callers may
// retry, from everything else.
func storeErr(err error) error {
	if errors.Is(err, driver.ErrBadConn) {
		return errorspkg.ErrUnavailable
	}

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Class() == "08" {
		return errorspkg.ErrUnavailable
	}

	return errorspkg.ErrInternal
}

package accountrepo

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vporoshin/bank-ledger/internal/domain"
	"github.com/vporoshin/bank-ledger/pkg/moneypkg"
	"github.com/vporoshin/bank-ledger/pkg/randompkg"
)

func mustMoney(t *testing.T, s string) moneypkg.Money {
	t.Helper()

	m, err := moneypkg.FromString(s)
	require.NoError(t, err)

	return m
}

func createTestAccount(t *testing.T, r *RepoMem, balance string) domain.Account {
	t.Helper()

	a, err := r.Create(context.Background(), randompkg.UUID(), randompkg.Name(), mustMoney(t, balance))
	require.NoError(t, err)
	require.NotEmpty(t, a)

	return a
}

func TestMemCreate(t *testing.T) {
	r := NewRepoMem()

	id := randompkg.UUID()
	name := randompkg.Name()
	balance := mustMoney(t, "100.500")

	a, err := r.Create(context.Background(), id, name, balance)
	require.NoError(t, err)
	require.Equal(t, id, a.ID)
	require.Equal(t, name, a.Name)
	require.True(t, balance.Equal(a.Balance))
	require.NotZero(t, a.CreatedAt)

	t.Run("DuplicateID", func(t *testing.T) {
		_, err := r.Create(context.Background(), id, randompkg.Name(), balance)
		require.ErrorIs(t, err, domain.ErrDuplicateAccount)
	})

	t.Run("NegativeBalance", func(t *testing.T) {
		_, err := r.Create(context.Background(), randompkg.UUID(), randompkg.Name(), mustMoney(t, "-1"))
		require.ErrorIs(t, err, domain.ErrInvalidBalance)
	})

	t.Run("EmptyName", func(t *testing.T) {
		_, err := r.Create(context.Background(), randompkg.UUID(), "", balance)
		require.ErrorIs(t, err, domain.ErrInvalidName)
	})
}

func TestMemGet(t *testing.T) {
	r := NewRepoMem()
	created := createTestAccount(t, r, "10.000")

	got, err := r.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)

	_, err = r.Get(context.Background(), randompkg.UUID())
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestMemList(t *testing.T) {
	r := NewRepoMem()
	ctx := context.Background()

	alice, err := r.Create(ctx, randompkg.UUID(), "Alice Smith", mustMoney(t, "1"))
	require.NoError(t, err)
	bob, err := r.Create(ctx, randompkg.UUID(), "Bob Jones", mustMoney(t, "2"))
	require.NoError(t, err)
	alison, err := r.Create(ctx, randompkg.UUID(), "alison brown", mustMoney(t, "3"))
	require.NoError(t, err)

	testCases := []struct {
		name   string
		filter string
		limit  int32
		offset int32
		want   []domain.Account
	}{
		{
			name: "All",
			want: []domain.Account{alice, bob, alison},
		},
		{
			name:   "CaseInsensitiveSubstring",
			filter: "ALI",
			want:   []domain.Account{alice, alison},
		},
		{
			name:   "NoMatch",
			filter: "zzz",
			want:   []domain.Account{},
		},
		{
			name:  "Limit",
			limit: 2,
			want:  []domain.Account{alice, bob},
		},
		{
			name:   "Offset",
			limit:  2,
			offset: 2,
			want:   []domain.Account{alison},
		},
		{
			name:   "OffsetPastEnd",
			offset: 10,
			want:   []domain.Account{},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			got, err := r.List(ctx, tc.filter, tc.limit, tc.offset)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestMemApplyDelta(t *testing.T) {
	r := NewRepoMem()
	ctx := context.Background()

	a := createTestAccount(t, r, "100.000")

	got, err := r.ApplyDelta(ctx, a.ID, mustMoney(t, "25.250"))
	require.NoError(t, err)
	require.Equal(t, "125.250", got.Balance.String())

	got, err = r.ApplyDelta(ctx, a.ID, mustMoney(t, "-125.250"))
	require.NoError(t, err)
	require.Equal(t, "0.000", got.Balance.String())

	t.Run("InsufficientFunds", func(t *testing.T) {
		_, err := r.ApplyDelta(ctx, a.ID, mustMoney(t, "-0.001"))
		require.ErrorIs(t, err, domain.ErrInsufficientFunds)

		unchanged, err := r.Get(ctx, a.ID)
		require.NoError(t, err)
		require.Equal(t, "0.000", unchanged.Balance.String())
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := r.ApplyDelta(ctx, randompkg.UUID(), mustMoney(t, "1"))
		require.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

// Concurrent debits of a fixed amount must succeed exactly
// floor(balance/amount) times, the rest failing with
// ErrInsufficientFunds, whatever the interleaving.
func TestMemApplyDeltaSerializable(t *testing.T) {
	r := NewRepoMem()
	ctx := context.Background()

	a := createTestAccount(t, r, "1050.000")
	debit := mustMoney(t, "100.000").Neg()

	const n = 20

	errs := make(chan error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := r.ApplyDelta(ctx, a.ID, debit)
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)

	var succeeded, insufficient int

	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, domain.ErrInsufficientFunds)
			insufficient++
		}
	}

	require.Equal(t, 10, succeeded)
	require.Equal(t, n-10, insufficient)

	final, err := r.Get(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "50.000", final.Balance.String())
}

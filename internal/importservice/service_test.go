package importservice

import (
	"context"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/vporoshin/bank-ledger/internal/accountrepo"
	"github.com/vporoshin/bank-ledger/internal/domain"
	"github.com/vporoshin/bank-ledger/pkg/errorspkg"
	"github.com/vporoshin/bank-ledger/pkg/randompkg"
)

func TestImportRows(t *testing.T) {
	ctx := context.Background()

	id1 := randompkg.UUID()
	id2 := randompkg.UUID()

	rows := []domain.ImportRow{
		{ID: "ID", Name: "Name", Balance: "Balance"},
		{ID: id1.String(), Name: "Alice", Balance: "100.500"},
		{ID: id2.String(), Name: "Bob", Balance: "250.000"},
		{ID: id1.String(), Name: "Alice again", Balance: "1.000"},
		{ID: "not-a-uuid", Name: "Carol", Balance: "1.000"},
		{ID: randompkg.UUID().String(), Name: "", Balance: "1.000"},
		{ID: randompkg.UUID().String(), Name: "Dave", Balance: "12.3456"},
		{ID: randompkg.UUID().String(), Name: "Erin", Balance: "-5.000"},
	}

	accounts := accountrepo.NewRepoMem()
	service := New(accounts)

	res := service.ImportRows(ctx, rows)

	require.Equal(t, 2, res.Imported)
	require.Equal(t, 1, res.Skipped)
	require.Len(t, res.Errors, 4)
	require.Equal(t, []int{5, 6, 7, 8}, rowNumbers(res.Errors))

	// The duplicate row did not overwrite the first import.
	a, err := accounts.Get(ctx, id1)
	require.NoError(t, err)
	require.Equal(t, "Alice", a.Name)
	require.Equal(t, "100.500", a.Balance.String())

	t.Run("Reimport", func(t *testing.T) {
		res := service.ImportRows(ctx, rows[:3])

		want := domain.ImportResult{Imported: 0, Skipped: 2}
		require.Empty(t, cmp.Diff(want, res))
	})
}

func rowNumbers(errs []domain.RowError) []int {
	nums := make([]int, 0, len(errs))
	for _, e := range errs {
		nums = append(nums, e.Row)
	}

	return nums
}

func TestImportRowsStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(1).
		Return(domain.Account{}, errorspkg.ErrInternal)

	service := New(repo)

	res := service.ImportRows(context.Background(), []domain.ImportRow{
		{ID: randompkg.UUID().String(), Name: "Alice", Balance: "1.000"},
	})

	require.Equal(t, 0, res.Imported)
	require.Equal(t, 0, res.Skipped)
	require.Len(t, res.Errors, 1)
	require.Equal(t, 1, res.Errors[0].Row)
	require.Contains(t, res.Errors[0].Reason, errorspkg.ErrInternal.Error())
}

func TestImportCSV(t *testing.T) {
	ctx := context.Background()

	id1 := randompkg.UUID()
	id2 := randompkg.UUID()

	csvBody := strings.Join([]string{
		"ID,Name,Balance",
		id1.String() + `,"Smith, Alice",100.500`,
		id2.String() + ",Bob,250.000",
		id1.String() + ",Duplicate,1.000",
		"short-row,only-two-fields",
	}, "\n")

	accounts := accountrepo.NewRepoMem()
	service := New(accounts)

	res, err := service.ImportCSV(ctx, strings.NewReader(csvBody))
	require.NoError(t, err)

	require.Equal(t, 2, res.Imported)
	require.Equal(t, 1, res.Skipped)
	require.Len(t, res.Errors, 1)
	require.Equal(t, 5, res.Errors[0].Row)

	a, err := accounts.Get(ctx, id1)
	require.NoError(t, err)
	require.Equal(t, "Smith, Alice", a.Name)
}

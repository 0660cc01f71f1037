package accountservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vporoshin/bank-ledger/internal/domain"
	"github.com/vporoshin/bank-ledger/pkg/errorspkg"
	"github.com/vporoshin/bank-ledger/pkg/moneypkg"
	"github.com/vporoshin/bank-ledger/pkg/randompkg"
)

func testAccount() domain.Account {
	return domain.Account{
		ID:        randompkg.UUID(),
		Name:      randompkg.Name(),
		Balance:   randompkg.MoneyBetween(100, 1_000),
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

func TestCreate(t *testing.T) {
	account := testAccount()

	type input struct {
		id      uuid.UUID
		name    string
		balance moneypkg.Money
	}

	testCases := []struct {
		name          string
		input         input
		buildStubs    func(repo *MockRepo)
		checkResponse func(res domain.Account, err error)
	}{
		{
			name: "OK",
			input: input{
				id:      account.ID,
				name:    account.Name,
				balance: account.Balance,
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Eq(account.ID), gomock.Eq(account.Name), gomock.Eq(account.Balance)).
					Times(1).
					Return(account, nil)
			},
			checkResponse: func(res domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, account, res)
			},
		},
		{
			name: "GeneratesID",
			input: input{
				id:      uuid.Nil,
				name:    account.Name,
				balance: account.Balance,
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Not(gomock.Eq(uuid.Nil)), gomock.Eq(account.Name), gomock.Eq(account.Balance)).
					Times(1).
					Return(account, nil)
			},
			checkResponse: func(res domain.Account, err error) {
				require.NoError(t, err)
			},
		},
		{
			name: "EmptyName",
			input: input{
				id:      account.ID,
				balance: account.Balance,
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidName)
				require.Empty(t, res)
			},
		},
		{
			name: "NegativeBalance",
			input: input{
				id:      account.ID,
				name:    account.Name,
				balance: moneypkg.FromUnits(-1),
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidBalance)
				require.Empty(t, res)
			},
		},
		{
			name: "DuplicateID",
			input: input{
				id:      account.ID,
				name:    account.Name,
				balance: account.Balance,
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Eq(account.ID), gomock.Eq(account.Name), gomock.Eq(account.Balance)).
					Times(1).
					Return(domain.Account{}, domain.ErrDuplicateAccount)
			},
			checkResponse: func(res domain.Account, err error) {
				require.ErrorIs(t, err, domain.ErrDuplicateAccount)
				require.Empty(t, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := New(repo)

			res, err := service.Create(context.Background(), tc.input.id, tc.input.name, tc.input.balance)
			tc.checkResponse(res, err)
		})
	}
}

func TestGet(t *testing.T) {
	account := testAccount()

	testCases := []struct {
		name          string
		id            uuid.UUID
		buildStubs    func(repo *MockRepo)
		checkResponse func(res domain.Account, err error)
	}{
		{
			name: "OK",
			id:   account.ID,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)
			},
			checkResponse: func(res domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, account, res)
			},
		},
		{
			name: "NotFound",
			id:   account.ID,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(res domain.Account, err error) {
				require.ErrorIs(t, err, domain.ErrAccountNotFound)
				require.Empty(t, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := New(repo)

			res, err := service.Get(context.Background(), tc.id)
			tc.checkResponse(res, err)
		})
	}
}

func TestList(t *testing.T) {
	accounts := []domain.Account{testAccount(), testAccount()}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	// pageID 3 with pageSize 10 translates to offset 20.
	repo.EXPECT().
		List(gomock.Any(), gomock.Eq("ali"), gomock.Eq(int32(10)), gomock.Eq(int32(20))).
		Times(1).
		Return(accounts, nil)

	service := New(repo)

	res, err := service.List(context.Background(), "ali", 10, 3)
	require.NoError(t, err)
	require.Equal(t, accounts, res)

	repo.EXPECT().
		List(gomock.Any(), gomock.Eq(""), gomock.Eq(int32(10)), gomock.Eq(int32(0))).
		Times(1).
		Return(nil, errorspkg.ErrInternal)

	res, err = service.List(context.Background(), "", 10, 1)
	require.ErrorIs(t, err, errorspkg.ErrInternal)
	require.Nil(t, res)
}

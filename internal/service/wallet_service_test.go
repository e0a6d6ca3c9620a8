package service

import (
	"context"
	"testing"
	"time"

	"github.com/abysswarrior/aban-tether-interview/internal/domain"
	"github.com/abysswarrior/aban-tether-interview/internal/repository/repoargs"
	"github.com/abysswarrior/aban-tether-interview/internal/service/mocks"
	"github.com/abysswarrior/aban-tether-interview/pkg/uow"
	uowmocks "github.com/abysswarrior/aban-tether-interview/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type WalletServiceTestSuite struct {
	suite.Suite
	mockUOW        *uowmocks.MockUOW
	mockTX         *uowmocks.MockTX
	mockWalletRepo *mocks.MockWalletRepository
	walletService  *WalletService
}

func TestWalletServiceSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}

func (s *WalletServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockWalletRepo = mocks.NewMockWalletRepository(mockCtrl)
	s.mockTX = uowmocks.NewMockTX(mockCtrl)

	// Мок получения репозитория из uow. Выполняется в инициализации сервиса.
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.WalletRepoName)).
		Return(s.mockWalletRepo, nil).AnyTimes()

	walletService, servErr := NewWalletService(s.mockUOW)
	s.Require().NoError(servErr)
	s.walletService = walletService
}

func (s *WalletServiceTestSuite) TestGetBalance() {
	var userID int64 = 1
	var missingUserID int64 = 2

	wallet := domain.Wallet{
		ID:        1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		UserID:    userID,
		Balance:   decimal.RequireFromString("100.00"),
	}

	s.mockWalletRepo.EXPECT().
		GetByUserID(gomock.Any(), userID).
		Return(&wallet, nil)

	s.mockWalletRepo.EXPECT().
		GetByUserID(gomock.Any(), missingUserID).
		Return(nil, domain.ErrRecordNotFound)

	cases := []struct {
		name    string
		userID  int64
		wantErr error
	}{
		{name: "ok", userID: userID},
		{name: "missing wallet", userID: missingUserID, wantErr: domain.ErrRecordNotFound},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			got, err := s.walletService.GetBalance(s.T().Context(), t.userID)

			s.Require().ErrorIs(err, t.wantErr)
			if t.wantErr == nil {
				s.True(got.Balance.Equal(wallet.Balance))
			}
		})
	}
}

func (s *WalletServiceTestSuite) TestDeposit() {
	var userID int64 = 1
	amount := decimal.RequireFromString("50.00")

	credited := domain.Wallet{
		ID:        1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		UserID:    userID,
		Balance:   decimal.RequireFromString("150.00"),
	}

	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.WalletRepoName)).
		Return(s.mockWalletRepo, nil)

	s.mockWalletRepo.EXPECT().
		CreditBalance(gomock.Any(), userID, amount).
		Return(&credited, nil)

	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		})

	wallet, err := s.walletService.Deposit(s.T().Context(), userID, amount)

	s.Require().NoError(err)
	s.True(wallet.Balance.Equal(credited.Balance))
}

func (s *WalletServiceTestSuite) TestDepositInvalidAmount() {
	cases := []struct {
		name   string
		amount decimal.Decimal
	}{
		{name: "zero", amount: decimal.Zero},
		{name: "negative", amount: decimal.NewFromInt(-10)},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			wallet, err := s.walletService.Deposit(s.T().Context(), 1, t.amount)

			s.Require().ErrorIs(err, domain.ErrInvalidAmount)
			s.Nil(wallet)
		})
	}
}

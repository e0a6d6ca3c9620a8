package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/abysswarrior/aban-tether-interview/internal/domain"
	"github.com/abysswarrior/aban-tether-interview/internal/repository/repoargs"
	"github.com/abysswarrior/aban-tether-interview/pkg/uow"
)

type WalletService struct {
	uow        uow.UOW
	walletRepo WalletRepository
}

func NewWalletService(u uow.UOW) (*WalletService, error) {
	walletRepo, err := uow.GetRepositoryAs[WalletRepository](u, uow.RepositoryName(repoargs.WalletRepoName))
	if err != nil {
		return nil, err
	}
	return &WalletService{
		uow:        u,
		walletRepo: walletRepo,
	}, nil
}

// GetBalance возвращает кошелек юзера или domain.ErrRecordNotFound.
func (w *WalletService) GetBalance(ctx context.Context, userID int64) (*domain.Wallet, error) {
	wallet, err := w.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return wallet, nil
}

// Deposit пополняет кошелек юзера на amount. Возвращает domain.ErrInvalidAmount
// для неположительной суммы.
func (w *WalletService) Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("depositing: %w", domain.ErrInvalidAmount)
	}

	var wallet *domain.Wallet
	txErr := w.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		walletRepo, walletRepoErr := uow.GetAs[WalletRepository](tx, uow.RepositoryName(repoargs.WalletRepoName))
		if walletRepoErr != nil {
			return walletRepoErr //nolint:wrapcheck
		}
		var creditErr error
		wallet, creditErr = walletRepo.CreditBalance(c, userID, amount)
		return creditErr //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, fmt.Errorf("depositing: %w", txErr)
	}
	return wallet, nil
}

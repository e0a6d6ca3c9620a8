package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/abysswarrior/aban-tether-interview/internal/batch"
	"github.com/abysswarrior/aban-tether-interview/internal/domain"
	"github.com/abysswarrior/aban-tether-interview/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, args repoargs.OrderCreate) (*domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Order, error)
	GetByStatusAndCoin(
		ctx context.Context,
		coinSymbol string,
		status domain.OrderStatusType,
	) ([]domain.Order, error)
	BatchUpdateStatus(ctx context.Context, orderIDs []int64, status domain.OrderStatusType) error
}

type WalletRepository interface {
	CreateWallet(ctx context.Context, userID int64, balance decimal.Decimal) (*domain.Wallet, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Wallet, error)
	DebitBalance(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, error)
	CreditBalance(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, args repoargs.CreateUser) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// PriceOracle отдает цену монеты за единицу или domain.ErrCoinNotFound.
type PriceOracle interface {
	PriceOf(coinSymbol string) (decimal.Decimal, error)
}

// ExchangeClient исполняет рыночную покупку на внешней бирже.
type ExchangeClient interface {
	Buy(ctx context.Context, coinSymbol string, amount decimal.Decimal) error
}

// PendingIndex индекс заявок, ожидающих батч-исполнения. См. контракт batch.Index.
type PendingIndex interface {
	Add(coinSymbol string, entry batch.Entry)
	SnapshotAndDrain(coinSymbol string) []batch.Entry
	PeekTotal(coinSymbol string) decimal.Decimal
	Len(coinSymbol string) int
}

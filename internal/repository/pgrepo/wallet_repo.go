package pgrepo

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/abysswarrior/aban-tether-interview/internal/domain"
	"github.com/abysswarrior/aban-tether-interview/pkg/uow"
)

const walletColumns = "id, created_at, updated_at, user_id, balance"

type WalletRepository struct {
	conn uow.DBTX
}

func NewWalletRepository(conn uow.DBTX) *WalletRepository {
	return &WalletRepository{conn: conn}
}

func (w *WalletRepository) CreateWallet(
	ctx context.Context,
	userID int64,
	balance decimal.Decimal,
) (*domain.Wallet, error) {
	row := w.conn.QueryRow(ctx,
		"INSERT INTO wallets (user_id, balance) VALUES ($1, $2) RETURNING "+walletColumns,
		userID, balance,
	)
	wallet, err := scanWallet(row)
	if err != nil {
		return nil, convertErr(err, "creating wallet for user `%d`", userID)
	}
	return wallet, nil
}

func (w *WalletRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Wallet, error) {
	row := w.conn.QueryRow(ctx,
		"SELECT "+walletColumns+" FROM wallets WHERE user_id = $1",
		userID,
	)
	wallet, err := scanWallet(row)
	if err != nil {
		return nil, convertErr(err, "getting wallet by userID `%d`", userID)
	}
	return wallet, nil
}

// DebitBalance списывает amount с кошелька юзера. Строка кошелька блокируется
// до конца транзакции (SELECT ... FOR UPDATE), поэтому метод должен вызываться
// внутри транзакции uow. Возвращает domain.ErrNotEnoughBalance если средств
// недостаточно - баланс при этом не меняется.
func (w *WalletRepository) DebitBalance(
	ctx context.Context,
	userID int64,
	amount decimal.Decimal,
) (*domain.Wallet, error) {
	var balance decimal.Decimal
	var walletID int64

	lockRow := w.conn.QueryRow(ctx,
		"SELECT id, balance FROM wallets WHERE user_id = $1 FOR UPDATE",
		userID,
	)
	if err := lockRow.Scan(&walletID, &balance); err != nil {
		return nil, convertErr(err, "locking wallet of user `%d`", userID)
	}

	if balance.LessThan(amount) {
		return nil, domain.ErrNotEnoughBalance
	}

	row := w.conn.QueryRow(ctx,
		"UPDATE wallets SET balance = balance - $2, updated_at = now() WHERE id = $1 RETURNING "+walletColumns,
		walletID, amount,
	)
	wallet, err := scanWallet(row)
	if err != nil {
		return nil, convertErr(err, "debiting wallet of user `%d`", userID)
	}
	return wallet, nil
}

// CreditBalance пополняет кошелек юзера на amount.
func (w *WalletRepository) CreditBalance(
	ctx context.Context,
	userID int64,
	amount decimal.Decimal,
) (*domain.Wallet, error) {
	row := w.conn.QueryRow(ctx,
		"UPDATE wallets SET balance = balance + $2, updated_at = now() WHERE user_id = $1 RETURNING "+walletColumns,
		userID, amount,
	)
	wallet, err := scanWallet(row)
	if err != nil {
		return nil, convertErr(err, "crediting wallet of user `%d`", userID)
	}
	return wallet, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWallet(row rowScanner) (*domain.Wallet, error) {
	var wallet domain.Wallet
	err := row.Scan(
		&wallet.ID,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
		&wallet.UserID,
		&wallet.Balance,
	)
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

package domain

import (
	"github.com/shopspring/decimal"

	"time"
)

type User struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Username  string
	Password  string
}

// Wallet фиатный кошелек юзера. Баланс хранится с точностью 2 знака после запятой.
type Wallet struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    int64
	Balance   decimal.Decimal
}

// Order заявка юзера на покупку Amount монет CoinSymbol. Точность Amount - 8 знаков после запятой.
type Order struct {
	ID         int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
	UserID     int64
	CoinSymbol string
	Amount     decimal.Decimal
	Status     OrderStatusType
}

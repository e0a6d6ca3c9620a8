package repoargs

import (
	"github.com/shopspring/decimal"
)

type OrderCreate struct {
	UserID     int64
	CoinSymbol string
	Amount     decimal.Decimal
}

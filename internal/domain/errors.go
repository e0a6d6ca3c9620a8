package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrPasswordMissMatch = errors.New("password mismatch")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrUnknown           = errors.New("unknown error")

	ErrNotEnoughBalance = errors.New("not enough balance")
	ErrCoinNotFound     = errors.New("coin not found")
	ErrInvalidAmount    = errors.New("invalid amount")
)

// ExchangeError возвращается когда внешняя биржа не смогла исполнить сделку по батчу.
// Содержит id заявок, которые были помечены как failed. Средства по этим заявкам
// не возвращаются на кошельки автоматически - сверка выполняется вне сервиса.
type ExchangeError struct {
	Err        error
	CoinSymbol string
	OrderIDs   []int64
}

func NewExchangeError(coinSymbol string, orderIDs []int64, err error) error {
	return &ExchangeError{
		Err:        err,
		CoinSymbol: coinSymbol,
		OrderIDs:   orderIDs,
	}
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf(
		"exchange buy failed for coin %s (orders %v): %s",
		e.CoinSymbol,
		e.OrderIDs,
		e.Err.Error(),
	)
}

func (e *ExchangeError) Unwrap() error {
	return e.Err
}

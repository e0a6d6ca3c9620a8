// Package pricing отдает текущие цены монет. Сейчас единственная реализация - статическая
// таблица из конфигурации; живой прайс-фид подключается заменой Oracle.
package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/abysswarrior/aban-tether-interview/internal/domain"
)

// Oracle возвращает цену монеты в фиате за единицу. Для неизвестной монеты -
// domain.ErrCoinNotFound.
type Oracle interface {
	PriceOf(coinSymbol string) (decimal.Decimal, error)
}

// Static реализация Oracle поверх неизменяемой таблицы цен.
type Static struct {
	prices map[string]decimal.Decimal
}

func NewStatic(prices map[string]decimal.Decimal) *Static {
	table := make(map[string]decimal.Decimal, len(prices))
	for symbol, price := range prices {
		table[strings.ToUpper(symbol)] = price
	}
	return &Static{prices: table}
}

// ParseStatic разбирает таблицу цен из строки вида `ABAN:4.00,BTC:65000.00`.
func ParseStatic(raw string) (*Static, error) {
	prices := make(map[string]decimal.Decimal)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		symbol, priceStr, found := strings.Cut(pair, ":")
		if !found {
			return nil, fmt.Errorf("parse price table: invalid pair `%s`", pair)
		}
		price, priceErr := decimal.NewFromString(strings.TrimSpace(priceStr))
		if priceErr != nil {
			return nil, fmt.Errorf("parse price table: invalid price in pair `%s`: %s", pair, priceErr.Error())
		}
		prices[strings.ToUpper(strings.TrimSpace(symbol))] = price
	}
	return NewStatic(prices), nil
}

func (s *Static) PriceOf(coinSymbol string) (decimal.Decimal, error) {
	price, ok := s.prices[strings.ToUpper(coinSymbol)]
	if !ok {
		return decimal.Zero, fmt.Errorf("price of `%s`: %w", coinSymbol, domain.ErrCoinNotFound)
	}
	return price, nil
}

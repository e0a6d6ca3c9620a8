package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abysswarrior/aban-tether-interview/internal/domain"
)

func TestStaticPriceOf(t *testing.T) {
	oracle := NewStatic(map[string]decimal.Decimal{
		"aban": decimal.RequireFromString("4.00"),
		"BTC":  decimal.RequireFromString("65000.00"),
	})

	cases := []struct {
		name       string
		coinSymbol string
		wantPrice  string
		wantErr    error
	}{
		{name: "exact symbol", coinSymbol: "BTC", wantPrice: "65000.00"},
		{name: "symbol is case insensitive", coinSymbol: "Aban", wantPrice: "4.00"},
		{name: "unknown coin", coinSymbol: "DOGE", wantErr: domain.ErrCoinNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			price, err := oracle.PriceOf(tc.coinSymbol)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, price.Equal(decimal.RequireFromString(tc.wantPrice)))
		})
	}
}

func TestParseStatic(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		oracle, err := ParseStatic("ABAN:4.00, btc : 65000.00")
		require.NoError(t, err)

		price, priceErr := oracle.PriceOf("ABAN")
		require.NoError(t, priceErr)
		assert.True(t, price.Equal(decimal.RequireFromString("4.00")))

		price, priceErr = oracle.PriceOf("BTC")
		require.NoError(t, priceErr)
		assert.True(t, price.Equal(decimal.RequireFromString("65000.00")))
	})

	t.Run("malformed pair", func(t *testing.T) {
		_, err := ParseStatic("ABAN=4.00")
		require.Error(t, err)
	})

	t.Run("malformed price", func(t *testing.T) {
		_, err := ParseStatic("ABAN:four")
		require.Error(t, err)
	})

	t.Run("empty table", func(t *testing.T) {
		oracle, err := ParseStatic("")
		require.NoError(t, err)

		_, priceErr := oracle.PriceOf("ABAN")
		require.ErrorIs(t, priceErr, domain.ErrCoinNotFound)
	})
}

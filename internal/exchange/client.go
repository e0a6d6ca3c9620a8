// Package exchange реализует покупку монет на внешней бирже.
package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

const RouteMarketBuy = "/api/market/buy"

// Client исполняет рыночную покупку amount монет coinSymbol. Вызов либо
// завершается успешно, либо возвращает ошибку - частичного исполнения нет.
type Client interface {
	Buy(ctx context.Context, coinSymbol string, amount decimal.Decimal) error
}

type buyRequest struct {
	CoinSymbol string          `json:"coin"`
	Amount     decimal.Decimal `json:"amount"`
}

// HTTPClient является реализацией интерфейса Client для HTTP запросов к бирже.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) HTTPClient {
	return HTTPClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

// Buy отправляет рыночную заявку на биржу. При ответе сервера со статусом отличным
// от http.StatusOK возвращает ошибку StatusCodeError.
//
//nolint:nonamedreturns
func (c HTTPClient) Buy(ctx context.Context, coinSymbol string, amount decimal.Decimal) (err error) {
	url := c.baseURL + RouteMarketBuy

	body, marshalErr := json.Marshal(buyRequest{
		CoinSymbol: coinSymbol,
		Amount:     amount,
	})
	if marshalErr != nil {
		return fmt.Errorf("marshal request: %s", marshalErr.Error())
	}

	// Создаем запрос.
	req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if reqErr != nil {
		return fmt.Errorf("create request: %s", reqErr.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	// Выполняем запрос.
	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return fmt.Errorf("do request: %s", doErr.Error())
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	// Статус отличный от http.StatusOK считаем неисполненной сделкой.
	if resp.StatusCode != http.StatusOK {
		return NewStatusCodeError(resp.StatusCode)
	}

	return nil
}

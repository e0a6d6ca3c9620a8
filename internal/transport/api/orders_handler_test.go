package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/abysswarrior/aban-tether-interview/internal/domain"
	"github.com/abysswarrior/aban-tether-interview/internal/logger"
	"github.com/abysswarrior/aban-tether-interview/internal/transport/api/mocks"
	"github.com/abysswarrior/aban-tether-interview/internal/transport/api/testutils"
	"github.com/abysswarrior/aban-tether-interview/internal/transport/api/tokens"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockOrderService *mocks.MockOrderServicer
	jwtSecret        []byte
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

func (s *OrderHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	defer mockCtrl.Finish()

	s.mockOrderService = mocks.NewMockOrderServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:       logger.New(os.Stdout),
		OrderService: s.mockOrderService,
		JWTSecretKey: s.jwtSecret,
	})
}

func createOrderBody(s *OrderHandlerTestSuite, coin string, amount string) []byte {
	body, err := json.Marshal(gin.H{"coin": coin, "amount": amount})
	s.Require().NoError(err)
	return body
}

func (s *OrderHandlerTestSuite) TestCreateOrder() {
	var currentUserID int64 = 1

	currentUserJWTToken, cJWTTokenErr := tokens.GenerateUserJWT(currentUserID, time.Hour, s.jwtSecret)
	s.Require().NoError(cJWTTokenErr)

	amount := decimal.NewFromInt(1)
	completedOrder := domain.Order{
		ID:         1,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
		UserID:     currentUserID,
		CoinSymbol: "ABAN",
		Amount:     amount,
		Status:     domain.OrderStatusCompleted,
	}
	failedOrder := completedOrder
	failedOrder.ID = 2
	failedOrder.CoinSymbol = "FAILCOIN"
	failedOrder.Status = domain.OrderStatusFailed

	// Моки
	// Валидная заявка, исполнена.
	s.mockOrderService.EXPECT().
		Create(gomock.Any(), currentUserID, "ABAN", gomock.Any()).
		Return(&completedOrder, nil)
	// Неизвестная монета.
	s.mockOrderService.EXPECT().
		Create(gomock.Any(), currentUserID, "DOGE", gomock.Any()).
		Return(nil, domain.ErrCoinNotFound)
	// Не хватает баланса.
	s.mockOrderService.EXPECT().
		Create(gomock.Any(), currentUserID, "BTC", gomock.Any()).
		Return(nil, domain.ErrNotEnoughBalance)
	// Биржа отклонила батч: заявка создана, помечена failed, списание осталось.
	s.mockOrderService.EXPECT().
		Create(gomock.Any(), currentUserID, "FAILCOIN", gomock.Any()).
		Return(&failedOrder, domain.NewExchangeError("FAILCOIN", []int64{2}, domain.ErrUnknown))

	cases := []struct {
		name       string
		payload    []byte
		jwtToken   string
		wantStatus int
	}{
		{
			name:       "all ok",
			payload:    createOrderBody(s, "ABAN", "1"),
			jwtToken:   currentUserJWTToken,
			wantStatus: http.StatusCreated,
		}, {
			name:       "unknown coin",
			payload:    createOrderBody(s, "DOGE", "1"),
			jwtToken:   currentUserJWTToken,
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "not enough balance",
			payload:    createOrderBody(s, "BTC", "1"),
			jwtToken:   currentUserJWTToken,
			wantStatus: http.StatusPaymentRequired,
		}, {
			name:       "exchange failure",
			payload:    createOrderBody(s, "FAILCOIN", "1"),
			jwtToken:   currentUserJWTToken,
			wantStatus: http.StatusBadGateway,
		}, {
			name:       "not authorized",
			payload:    createOrderBody(s, "ABAN", "1"),
			wantStatus: http.StatusUnauthorized,
		}, {
			name:       "bad request",
			payload:    []byte(`{"amount":"1"}`),
			jwtToken:   currentUserJWTToken,
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			args := testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + OrdersRoute,
				Body:   bytes.NewReader(t.payload),
			}
			var reqOpts []func(*testutils.RequestOptions)
			if t.jwtToken != "" {
				reqOpts = append(reqOpts, testutils.WithBearerToken(t.jwtToken))
			}
			reqOpts = append(reqOpts, testutils.WithHeader("Content-Type", "application/json"))
			res := testutils.MakeRequest(args, reqOpts...)

			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Equal(t.wantStatus, res.StatusCode)

			if t.wantStatus == http.StatusCreated {
				var response OrderResponse
				s.Require().NoError(json.NewDecoder(res.Body).Decode(&response))
				s.Equal(completedOrder.ID, response.ID)
				s.Equal(domain.OrderStatusCompleted, response.Status)
			}
		})
	}
}

func (s *OrderHandlerTestSuite) TestIndex() {
	var userID int64 = 1
	var noOrdersUserID int64 = 2

	userJWTToken, uJWTErr := tokens.GenerateUserJWT(userID, time.Hour, s.jwtSecret)
	s.Require().NoError(uJWTErr)
	userNoOrdersJWTToken, uNoOrdersJWTErr := tokens.GenerateUserJWT(noOrdersUserID, time.Hour, s.jwtSecret)
	s.Require().NoError(uNoOrdersJWTErr)

	orders := []domain.Order{
		{
			ID:         1,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
			UserID:     userID,
			CoinSymbol: "ABAN",
			Amount:     decimal.NewFromInt(1),
			Status:     domain.OrderStatusPending,
		},
	}
	s.mockOrderService.EXPECT().GetByUserID(gomock.Any(), userID).Return(orders, nil)
	s.mockOrderService.EXPECT().GetByUserID(gomock.Any(), noOrdersUserID).Return([]domain.Order{}, nil)

	cases := []struct {
		name       string
		jwtToken   string
		wantStatus int
	}{
		{
			name:       "all ok",
			jwtToken:   userJWTToken,
			wantStatus: http.StatusOK,
		}, {
			name:       "not authorized",
			jwtToken:   "",
			wantStatus: http.StatusUnauthorized,
		}, {
			name:       "no orders",
			jwtToken:   userNoOrdersJWTToken,
			wantStatus: http.StatusNoContent,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			args := testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodGet,
				URL:    RouteGroup + OrdersRoute,
			}
			var reqOpts []func(*testutils.RequestOptions)
			if t.jwtToken != "" {
				reqOpts = append(reqOpts, testutils.WithBearerToken(t.jwtToken))
			}
			res := testutils.MakeRequest(args, reqOpts...)
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

func (s *OrderHandlerTestSuite) TestShow() {
	var userID int64 = 1
	var strangerID int64 = 2

	userJWTToken, uJWTErr := tokens.GenerateUserJWT(userID, time.Hour, s.jwtSecret)
	s.Require().NoError(uJWTErr)
	strangerJWTToken, sJWTErr := tokens.GenerateUserJWT(strangerID, time.Hour, s.jwtSecret)
	s.Require().NoError(sJWTErr)

	order := domain.Order{
		ID:         1,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
		UserID:     userID,
		CoinSymbol: "ABAN",
		Amount:     decimal.NewFromInt(1),
		Status:     domain.OrderStatusPending,
	}
	s.mockOrderService.EXPECT().FindByID(gomock.Any(), order.ID).Return(&order, nil).Times(2)
	s.mockOrderService.EXPECT().FindByID(gomock.Any(), int64(42)).
		Return(nil, domain.ErrRecordNotFound)

	cases := []struct {
		name       string
		url        string
		jwtToken   string
		wantStatus int
	}{
		{
			name:       "all ok",
			url:        "/api/orders/1",
			jwtToken:   userJWTToken,
			wantStatus: http.StatusOK,
		}, {
			// чужая заявка неотличима от несуществующей.
			name:       "foreign order",
			url:        "/api/orders/1",
			jwtToken:   strangerJWTToken,
			wantStatus: http.StatusNotFound,
		}, {
			name:       "missing order",
			url:        "/api/orders/42",
			jwtToken:   userJWTToken,
			wantStatus: http.StatusNotFound,
		}, {
			name:       "malformed id",
			url:        "/api/orders/abc",
			jwtToken:   userJWTToken,
			wantStatus: http.StatusNotFound,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			args := testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodGet,
				URL:    t.url,
			}
			res := testutils.MakeRequest(args, testutils.WithBearerToken(t.jwtToken))
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

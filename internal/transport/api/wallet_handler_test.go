package api

import (
	"bytes"
	"context"
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

type WalletHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockWalletService *mocks.MockWalletServicer
	jwtSecret         []byte
}

func TestWalletHandlerSuite(t *testing.T) {
	suite.Run(t, new(WalletHandlerTestSuite))
}

func (s *WalletHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	defer mockCtrl.Finish()

	s.mockWalletService = mocks.NewMockWalletServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:        logger.New(os.Stdout),
		WalletService: s.mockWalletService,
		JWTSecretKey:  s.jwtSecret,
	})
}

func (s *WalletHandlerTestSuite) TestIndex() {
	var userID int64 = 1

	userJWTToken, jwtErr := tokens.GenerateUserJWT(userID, time.Hour, s.jwtSecret)
	s.Require().NoError(jwtErr)

	wallet := domain.Wallet{
		ID:        1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		UserID:    userID,
		Balance:   decimal.RequireFromString("96.00"),
	}
	s.mockWalletService.EXPECT().GetBalance(gomock.Any(), userID).Return(&wallet, nil)

	res := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + WalletRoute,
	}, testutils.WithBearerToken(userJWTToken))
	defer func() {
		closeErr := res.Body.Close()
		s.Require().NoError(closeErr)
	}()

	s.Equal(http.StatusOK, res.StatusCode)

	var response WalletResponse
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&response))
	s.InDelta(96.00, response.Balance, 0.001)
}

func (s *WalletHandlerTestSuite) TestDeposit() {
	var userID int64 = 1

	userJWTToken, jwtErr := tokens.GenerateUserJWT(userID, time.Hour, s.jwtSecret)
	s.Require().NoError(jwtErr)

	credited := domain.Wallet{
		ID:        1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		UserID:    userID,
		Balance:   decimal.RequireFromString("150.00"),
	}

	s.mockWalletService.EXPECT().
		Deposit(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, amount decimal.Decimal) (*domain.Wallet, error) {
			if !amount.IsPositive() {
				return nil, domain.ErrInvalidAmount
			}
			return &credited, nil
		}).Times(2)

	cases := []struct {
		name       string
		payload    gin.H
		wantStatus int
	}{
		{
			name:       "all ok",
			payload:    gin.H{"amount": "50.00"},
			wantStatus: http.StatusOK,
		}, {
			name:       "negative amount",
			payload:    gin.H{"amount": "-1"},
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "missing amount",
			payload:    gin.H{},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			body, marshalErr := json.Marshal(t.payload)
			s.Require().NoError(marshalErr)

			res := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + WalletDepositRoute,
				Body:   bytes.NewReader(body),
			}, testutils.WithBearerToken(userJWTToken), testutils.WithHeader("Content-Type", "application/json"))
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/abysswarrior/aban-tether-interview/internal/domain"
	"github.com/abysswarrior/aban-tether-interview/internal/logger"
	"github.com/abysswarrior/aban-tether-interview/internal/service"
	"github.com/abysswarrior/aban-tether-interview/internal/transport/api/mocks"
	"github.com/abysswarrior/aban-tether-interview/internal/transport/api/testutils"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockUserService *mocks.MockUserServicer
	jwtSecret       []byte
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	defer mockCtrl.Finish()

	s.mockUserService = mocks.NewMockUserServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:       logger.New(os.Stdout),
		UserService:  s.mockUserService,
		JWTSecretKey: s.jwtSecret,
	})
}

func (s *AuthHandlerTestSuite) TestRegister() {
	user := domain.User{
		ID:        1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Username:  "newUser",
	}

	s.mockUserService.EXPECT().
		Register(gomock.Any(), service.RegisterUserArgs{Username: "newUser", Password: "password"}).
		Return(&user, "jwt-token", nil)
	s.mockUserService.EXPECT().
		Register(gomock.Any(), service.RegisterUserArgs{Username: "takenUser", Password: "password"}).
		Return(nil, "", domain.ErrDuplicateKey)

	cases := []struct {
		name       string
		payload    gin.H
		wantStatus int
		wantToken  bool
	}{
		{
			name:       "all ok",
			payload:    gin.H{"login": "newUser", "password": "password"},
			wantStatus: http.StatusOK,
			wantToken:  true,
		}, {
			name:       "duplicate login",
			payload:    gin.H{"login": "takenUser", "password": "password"},
			wantStatus: http.StatusConflict,
		}, {
			// валидация: пароль короче 6 символов.
			name:       "short password",
			payload:    gin.H{"login": "newUser", "password": "123"},
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "missing login",
			payload:    gin.H{"password": "password"},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			body, marshalErr := json.Marshal(t.payload)
			s.Require().NoError(marshalErr)

			res := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + RegisterRoute,
				Body:   bytes.NewReader(body),
			}, testutils.WithHeader("Content-Type", "application/json"))
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Equal(t.wantStatus, res.StatusCode)
			if t.wantToken {
				s.Equal("Bearer jwt-token", res.Header.Get("Authorization"))
			}
		})
	}
}

func (s *AuthHandlerTestSuite) TestLogin() {
	user := domain.User{
		ID:        1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Username:  "existing",
	}

	s.mockUserService.EXPECT().
		Login(gomock.Any(), service.LoginUserArgs{Username: "existing", Password: "password"}).
		Return(&user, "jwt-token", nil)
	s.mockUserService.EXPECT().
		Login(gomock.Any(), service.LoginUserArgs{Username: "existing", Password: "wrongpass"}).
		Return(nil, "", domain.ErrPasswordMissMatch)
	s.mockUserService.EXPECT().
		Login(gomock.Any(), service.LoginUserArgs{Username: "missing", Password: "password"}).
		Return(nil, "", domain.ErrRecordNotFound)

	cases := []struct {
		name       string
		payload    gin.H
		wantStatus int
	}{
		{
			name:       "all ok",
			payload:    gin.H{"login": "existing", "password": "password"},
			wantStatus: http.StatusOK,
		}, {
			// невалидный пароль и несуществующий логин неразличимы в ответе.
			name:       "wrong password",
			payload:    gin.H{"login": "existing", "password": "wrongpass"},
			wantStatus: http.StatusUnauthorized,
		}, {
			name:       "unknown login",
			payload:    gin.H{"login": "missing", "password": "password"},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			body, marshalErr := json.Marshal(t.payload)
			s.Require().NoError(marshalErr)

			res := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + LoginRoute,
				Body:   bytes.NewReader(body),
			}, testutils.WithHeader("Content-Type", "application/json"))
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Equal(t.wantStatus, res.StatusCode)
			if t.wantStatus == http.StatusOK {
				s.Equal("Bearer jwt-token", res.Header.Get("Authorization"))
			}
		})
	}
}

package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"gather/config"
	"gather/infras/jwt"
	jwtMocks "gather/infras/jwt/mocks"
	"gather/infras/otel/mocks"
	"gather/internal/domains/auth/model/dto"
	"gather/internal/domains/auth/service"
	userMocks "gather/internal/domains/user/mocks"
	userModel "gather/internal/domains/user/model"
	"gather/shared/failure"
	gModel "gather/shared/model"
	"gather/shared/password"
)

func newAuthService(t *testing.T) (service.Auth, *userMocks.MockUser, *jwtMocks.MockJWT) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockUserRepo, cfg, mockOtel, mockJWT)

	return svc, mockUserRepo, mockJWT
}

func tokenPair() *jwt.TokenPair {
	return &jwt.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}
}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{Email: "new@example.com", Password: "secret-password"}

	t.Run("registers and returns tokens with the user summary", func(t *testing.T) {
		svc, userRepo, mockJWT := newAuthService(t)

		userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		userRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user userModel.User) (int64, error) {
				assert.Equal(t, "new@example.com", user.Email)
				assert.Equal(t, "USER", user.Role)
				assert.NotEqual(t, "secret-password", user.Password)

				return 7, nil
			})
		mockJWT.EXPECT().GenerateTokenPair(int64(7), "new@example.com", "USER").Return(tokenPair(), nil)

		res, err := svc.Register(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, "access", res.AccessToken)
		assert.Equal(t, int64(7), res.User.ID)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		svc, userRepo, _ := newAuthService(t)

		userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.Register(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := password.Hash("secret-password")
	stored := userModel.User{ID: 7, Email: "user@example.com", Password: hashed, Role: "USER"}

	t.Run("valid credentials yield a token pair", func(t *testing.T) {
		svc, userRepo, mockJWT := newAuthService(t)

		userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
		mockJWT.EXPECT().GenerateTokenPair(int64(7), "user@example.com", "USER").Return(tokenPair(), nil)

		res, err := svc.Login(context.Background(), dto.LoginRequest{Email: "user@example.com", Password: "secret-password"})

		assert.NoError(t, err)
		assert.Equal(t, "refresh", res.RefreshToken)
		assert.Equal(t, "user@example.com", res.User.Email)
	})

	t.Run("wrong password yields the generic message", func(t *testing.T) {
		svc, userRepo, _ := newAuthService(t)

		userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "user@example.com", Password: "wrong"})

		assert.Error(t, err)
		assert.Equal(t, "invalid email or password", err.Error())
	})

	t.Run("unknown email yields the same generic message", func(t *testing.T) {
		svc, userRepo, _ := newAuthService(t)

		userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "ghost@example.com", Password: "whatever"})

		assert.Error(t, err)
		assert.Equal(t, "invalid email or password", err.Error())
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("valid refresh token yields a new pair", func(t *testing.T) {
		svc, _, mockJWT := newAuthService(t)

		mockJWT.EXPECT().RefreshTokens("refresh").Return(tokenPair(), nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

		assert.NoError(t, err)
		assert.Equal(t, "access", res.AccessToken)
	})

	t.Run("invalid refresh token is unauthorized", func(t *testing.T) {
		svc, _, mockJWT := newAuthService(t)

		mockJWT.EXPECT().RefreshTokens("bad").Return(nil, jwt.ErrInvalidToken)

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad"})

		assert.Error(t, err)
		assert.Equal(t, 401, failure.GetCode(err))
	})
}

func TestAuthService_Me(t *testing.T) {
	t.Run("returns the public projection of the caller", func(t *testing.T) {
		svc, userRepo, _ := newAuthService(t)

		userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: 7, Email: "user@example.com"}, nil)

		res, err := svc.Me(context.Background(), gModel.Principal{UserID: 7})

		assert.NoError(t, err)
		assert.Equal(t, int64(7), res.ID)
	})

	t.Run("missing user yields not found", func(t *testing.T) {
		svc, userRepo, _ := newAuthService(t)

		userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		_, err := svc.Me(context.Background(), gModel.Principal{UserID: 99})

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

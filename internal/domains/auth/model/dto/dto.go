package dto

import (
	"gather/infras/jwt"
	userModel "gather/internal/domains/user/model"
	userDto "gather/internal/domains/user/model/dto"
	"gather/shared/constant"
	gModel "gather/shared/model"
	"gather/shared/timezone"
)

type RegisterRequest struct {
	Email    string  `json:"email"          validate:"required,email"`
	Password string  `json:"password"       validate:"required,min=8"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=100"`
}

func (r *RegisterRequest) ToUserModel(hashedPassword string) userModel.User {
	return userModel.User{
		Email:    r.Email,
		Password: hashedPassword,
		Name:     r.Name,
		Role:     constant.RoleUser,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
			UpdatedAt: timezone.Now(),
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse carries a token pair together with the public user summary.
// Register and Login share this shape.
type AuthResponse struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	ExpiresIn    int64                `json:"expires_in"`
	User         userDto.UserResponse `json:"user"`
}

func (a *AuthResponse) FromTokenPair(tokenPair *jwt.TokenPair, user userModel.User) {
	a.AccessToken = tokenPair.AccessToken
	a.RefreshToken = tokenPair.RefreshToken
	a.ExpiresIn = tokenPair.ExpiresIn
	a.User.FromModel(user)
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

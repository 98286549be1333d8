package auth

import (
	"context"

	"github.com/barberdesk/salon-backend-go/internal/domain/user"
)

type AuthService interface {
	// Register creates an admin account and logs it in.
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	// RefreshToken exchanges a valid refresh token for a new access token.
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (TokenResponse, error)
	// Logout revokes the presented access token for the rest of its lifetime.
	Logout(ctx context.Context, accessToken string) error
	Me(ctx context.Context, principal user.Principal) (MeResponse, error)
}

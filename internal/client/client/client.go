package client

import (
	"context"
)

// Client is the remote account API used by the session store.
// None of these calls carry an auth header; register and login establish
// the session.
type Client interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	FindUserByEmail(ctx context.Context, email string) (*UserResponse, error)
}

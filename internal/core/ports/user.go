package ports

import (
	"context"

	"github.com/DeTr1ll/Task-Manager/internal/core/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, username, passwordHash string) (domain.User, error)
	UserByUsername(ctx context.Context, username string) (domain.User, error)
	UserByID(ctx context.Context, id uint64) (domain.User, error)
}

type AuthService interface {
	Register(ctx context.Context, input domain.RegisterInput) (domain.User, error)
	// Login returns a signed session token for the credentials.
	Login(ctx context.Context, username, password string) (string, error)
	// UserIDFromToken validates a session token and extracts the subject.
	UserIDFromToken(token string) (uint64, error)
}

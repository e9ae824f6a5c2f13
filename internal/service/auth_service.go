package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/dapodiksmk/siswa-web/internal/model"
	"github.com/dapodiksmk/siswa-web/internal/repository"
)

// ErrInvalidCredentials covers both unknown usernames and wrong passwords,
// so failed logins never reveal which part was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService validates login credentials.
type AuthService struct {
	userRepo *repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo *repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Authenticate looks up the user by exact username and compares the
// password. The comparison is plaintext equality: the stored dataset
// carries unhashed passwords.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if user.Password != password {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

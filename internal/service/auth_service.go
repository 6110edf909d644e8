package service

import (
	"errors"

	"go-retail-ws/internal/model"
	"go-retail-ws/internal/repository"
	"go-retail-ws/pkg/jwt"
)

type AuthService interface {
	Login(email, password string) (string, *model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Login verifies credentials and issues a JWT.
func (s *authService) Login(email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", nil, errors.New("invalid email or password")
	}
	if !user.IsActive {
		return "", nil, errors.New("account is disabled")
	}
	if !user.CheckPassword(password) {
		return "", nil, errors.New("invalid email or password")
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"swapcycle/internal/models"
	"swapcycle/internal/repositories"
	"swapcycle/utils"
)

const (
	accessTokenTTL  = 120 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
)

type UserService struct {
	UserRepo     *repositories.UserRepository
	TokenManager *utils.Manager
}

func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.AuthResponse{}, err
	}

	user := models.User{
		Email:             req.Email,
		Username:          req.Username,
		PasswordHash:      string(hash),
		Name:              req.Name,
		Surname:           req.Surname,
		Address:           req.Address,
		PreferredCurrency: "USD",
	}

	user, err = s.UserRepo.CreateUser(ctx, user)
	if err != nil {
		return models.AuthResponse{}, err
	}

	return s.issueTokens(ctx, user)
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.AuthResponse, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return models.AuthResponse{}, models.ErrInvalidCredentials
		}
		return models.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return models.AuthResponse{}, models.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// RefreshTokens rotates the refresh token and issues a new access token.
func (s *UserService) RefreshTokens(ctx context.Context, refreshToken string) (models.AuthResponse, error) {
	session, err := s.UserRepo.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if session.UserID == 0 || session.ExpiresAt.Before(time.Now()) {
		return models.AuthResponse{}, models.ErrInvalidCredentials
	}

	user, err := s.UserRepo.GetUserByID(ctx, session.UserID)
	if err != nil {
		return models.AuthResponse{}, err
	}

	return s.issueTokens(ctx, user)
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (models.User, error) {
	return s.UserRepo.GetUserByID(ctx, id)
}

func (s *UserService) UpdateUser(ctx context.Context, u models.User) (models.User, error) {
	return s.UserRepo.UpdateUser(ctx, u)
}

func (s *UserService) issueTokens(ctx context.Context, user models.User) (models.AuthResponse, error) {
	accessToken, err := s.TokenManager.NewJWT(strconv.Itoa(user.ID), accessTokenTTL)
	if err != nil {
		return models.AuthResponse{}, err
	}

	refreshToken, err := s.TokenManager.NewRefreshToken()
	if err != nil {
		return models.AuthResponse{}, err
	}

	err = s.UserRepo.SaveSession(ctx, models.Session{
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(refreshTokenTTL),
	})
	if err != nil {
		return models.AuthResponse{}, err
	}

	return models.AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

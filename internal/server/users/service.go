package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ekarpova/resumecraft/internal/common"
	"github.com/ekarpova/resumecraft/internal/server/auth"
	"github.com/ekarpova/resumecraft/internal/server/config"
	"github.com/ekarpova/resumecraft/internal/server/refreshtokens"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type Service struct {
	repo                         Repository
	refreshTokenRepo             refreshtokens.Repository
	jwtSecret                    []byte
	bcryptCost                   int
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewService(repo Repository, refreshTokenRepo refreshtokens.Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                         repo,
		refreshTokenRepo:             refreshTokenRepo,
		jwtSecret:                    []byte(cfg.SecretKey),
		bcryptCost:                   cfg.BcryptCost,
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

func (s *Service) Register(ctx context.Context, email, password, firstName, lastName string) (*User, error) {

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorEmailTaken) {
			return nil, common.ErrorEmailTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

func (s *Service) generateAccessToken(user *User) (string, error) {
	return auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *Service) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *Service) issueTokenPair(ctx context.Context, user *User) (*TokenPair, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}

	if err := s.refreshTokenRepo.Create(ctx, user.ID, refreshToken, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}

	return s.issueTokenPair(ctx, user)
}

// Refresh rotates a refresh token: the presented token is invalidated and a
// fresh pair is issued. Expired or unknown tokens are rejected.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {

	stored, err := s.refreshTokenRepo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = s.refreshTokenRepo.Delete(ctx, refreshToken)
		return nil, common.ErrRefreshTokenExpired
	}

	user, err := s.repo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	if err := s.refreshTokenRepo.Delete(ctx, refreshToken); err != nil {
		return nil, common.ErrorInternal
	}

	return s.issueTokenPair(ctx, user)
}

func (s *Service) Profile(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID, firstName, lastName, phone string) error {
	return s.repo.UpdateProfile(ctx, userID, firstName, lastName, phone)
}

// ChangePassword verifies the current password before storing a new hash.
func (s *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return common.ErrorUnauthorized
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, userID, string(hash))
}

// DeleteAccount verifies the password and removes the user. Resumes and
// their sections go with it via referential cascade.
func (s *Service) DeleteAccount(ctx context.Context, userID, password string) error {

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return common.ErrorUnauthorized
	}

	return s.repo.Delete(ctx, userID)
}

func (s *Service) Stats(ctx context.Context, userID string) (*Stats, error) {
	return s.repo.Stats(ctx, userID)
}

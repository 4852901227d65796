package service

import (
	"context"
	"fmt"
	"strings"

	"globaltrade/internal/auth"
	"globaltrade/internal/model"
	"globaltrade/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// accountService implements AccountService.
type accountService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	tokens      *auth.TokenIssuer
	logger      zerolog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	tokens *auth.TokenIssuer,
	logger zerolog.Logger,
) AccountService {
	return &accountService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokens:      tokens,
		logger:      logger.With().Str("service", "account").Logger(),
	}
}

// SignUp registers a new user with its trading profile. The user and
// profile rows are written in one transaction.
func (s *accountService) SignUp(ctx context.Context, req *model.SignUpRequest) (*model.AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		s.logger.Debug().Str("email", email).Msg("signup with existing email")
		return nil, model.ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := s.userRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	user := &model.User{Email: email, PasswordHash: hash}
	if err := s.userRepo.Create(ctx, tx, user); err != nil {
		return nil, err
	}

	profile := &model.Profile{
		ID:          user.ID,
		UserType:    req.UserType,
		CompanyName: req.CompanyName,
		FullName:    req.FullName,
		Country:     req.Country,
		City:        req.City,
	}
	if err := s.profileRepo.Create(ctx, tx, profile); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit signup: %w", err)
	}

	token, err := s.tokens.Issue(auth.Session{UserID: user.ID, UserType: profile.UserType})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID.String()).
		Str("user_type", profile.UserType).
		Msg("account created")

	return &model.AuthResponse{Token: token, Profile: *profile}, nil
}

// Login verifies credentials and returns a session token.
func (s *accountService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Debug().Str("email", email).Msg("invalid credentials")
		return nil, model.ErrInvalidCredentials
	}

	profile, err := s.profileRepo.GetByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, model.ErrProfileNotFound
	}

	token, err := s.tokens.Issue(auth.Session{UserID: user.ID, UserType: profile.UserType})
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{Token: token, Profile: *profile}, nil
}

// GetProfile retrieves the profile for a user ID.
func (s *accountService) GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, model.ErrProfileNotFound
	}
	return profile, nil
}

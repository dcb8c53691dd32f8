package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/inkwell-api/internal/auth"
	"github.com/inkwell-api/internal/models"
	"github.com/inkwell-api/internal/repository"
	"github.com/inkwell-api/internal/validation"
	"github.com/rs/zerolog"
)

var errBadCredentials = &DomainError{Kind: ErrNotAuthenticated, Message: "Invalid email or password"}

// userService is the concrete implementation of UserService
type userService struct {
	repos     *repository.Repositories
	validator *validation.Validator
	hasher    *auth.PasswordHasher
	log       zerolog.Logger
}

// newUserService creates a new UserService
func newUserService(repos *repository.Repositories, validator *validation.Validator, hasher *auth.PasswordHasher, log zerolog.Logger) *userService {
	return &userService{
		repos:     repos,
		validator: validator,
		hasher:    hasher,
		log:       log.With().Str("service", "user").Logger(),
	}
}

// List returns all users, newest first
func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	return s.repos.User.List(ctx)
}

// Create adds a user with the requested role; unknown roles become author
func (s *userService) Create(ctx context.Context, in *models.UserInput) (*models.User, error) {
	role := models.RoleAuthor
	if in.Role == models.RoleAdmin {
		role = models.RoleAdmin
	}
	return createUser(ctx, s.repos, s.validator, s.hasher, s.log, in, role)
}

// Delete removes a user other than the actor
func (s *userService) Delete(ctx context.Context, actor *models.User, id string) error {
	if actor != nil && actor.ID == id {
		return invalid("You cannot delete your own account")
	}
	if !validation.IsUUID(id) {
		return notFound("User not found")
	}
	deleted, err := s.repos.User.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !deleted {
		return notFound("User not found")
	}
	s.log.Info().Str("user_id", id).Msg("User deleted")
	return nil
}

// authService is the concrete implementation of AuthService
type authService struct {
	repos     *repository.Repositories
	validator *validation.Validator
	hasher    *auth.PasswordHasher
	tokens    *auth.TokenManager
	log       zerolog.Logger
}

// newAuthService creates a new AuthService
func newAuthService(repos *repository.Repositories, validator *validation.Validator, hasher *auth.PasswordHasher, tokens *auth.TokenManager, log zerolog.Logger) *authService {
	return &authService{
		repos:     repos,
		validator: validator,
		hasher:    hasher,
		tokens:    tokens,
		log:       log.With().Str("service", "auth").Logger(),
	}
}

// Register signs up a new author
func (s *authService) Register(ctx context.Context, in *models.UserInput) (*models.User, error) {
	return createUser(ctx, s.repos, s.validator, s.hasher, s.log, in, models.RoleAuthor)
}

// Login checks credentials and issues a bearer token
func (s *authService) Login(ctx context.Context, creds *models.Credentials) (*models.TokenResponse, error) {
	if err := fromValidation(s.validator.ValidateCredentials(creds)); err != nil {
		return nil, err
	}

	user, err := s.repos.User.GetByEmail(ctx, strings.TrimSpace(creds.Email))
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil || !s.hasher.Check(user.PasswordHash, creds.Password) {
		s.log.Debug().Str("email", creds.Email).Msg("Login rejected")
		return nil, errBadCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt.Unix(),
		User:        user,
	}, nil
}

// Authenticate resolves a bearer token to the current user row
func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrNotAuthenticated
	}
	if !validation.IsUUID(claims.Subject) {
		return nil, ErrNotAuthenticated
	}
	user, err := s.repos.User.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, ErrNotAuthenticated
	}
	return user, nil
}

func createUser(
	ctx context.Context,
	repos *repository.Repositories,
	validator *validation.Validator,
	hasher *auth.PasswordHasher,
	log zerolog.Logger,
	in *models.UserInput,
	role string,
) (*models.User, error) {
	if err := fromValidation(validator.ValidateUser(in)); err != nil {
		return nil, err
	}

	hash, err := hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hash,
		FullName:     strings.TrimSpace(in.FullName),
		Role:         role,
	}

	if err := repos.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, conflict("Email already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("User created")
	return user, nil
}

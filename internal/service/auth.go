package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/stockroom/stockroom/internal/auth"
	"github.com/stockroom/stockroom/internal/model"
	"github.com/stockroom/stockroom/internal/repository"
)

// Auth service errors.
var (
	// ErrEmailTaken is returned when registering an already known email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned uniformly for unknown email and
	// wrong password, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const minPasswordLength = 6

// emailRegex is a permissive shape check; real verification happens by mail.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService handles registration, login, and token issuance.
type AuthService struct {
	repo     *repository.Repository
	secret   string
	issuer   string
	tokenTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.Repository, secret, issuer string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		repo:     repo,
		secret:   secret,
		issuer:   issuer,
		tokenTTL: tokenTTL,
	}
}

// RegisterInput defines input for registering a user.
type RegisterInput struct {
	Email    string
	Password string
}

// LoginInput defines input for logging in.
type LoginInput struct {
	Email    string
	Password string
}

// Register creates a new account. The email is lowercase-normalized before
// the uniqueness check so case variants map to the same account. The check
// and the insert are not atomic as a pair; a concurrent duplicate insert is
// caught by the unique constraint and reported as ErrEmailTaken as well.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) error {
	if err := validateCredentials(input.Email, input.Password); err != nil {
		return err
	}

	email := normalizeEmail(input.Email)

	_, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           newID(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Login verifies credentials and mints a signed token embedding the user's
// ID and email, expiring tokenTTL after issuance.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	if err := validateCredentials(input.Email, input.Password); err != nil {
		return "", err
	}

	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	match, err := auth.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !match {
		return "", ErrInvalidCredentials
	}

	token, err := auth.IssueToken(s.secret, s.issuer, user, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, nil
}

// validateCredentials checks email shape and password length,
// collecting every failing field.
func validateCredentials(email, password string) error {
	verr := &ValidationError{}

	if !emailRegex.MatchString(email) {
		verr.add("email", "must be a valid email address")
	}

	if len(password) < minPasswordLength {
		verr.add("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}

	return verr.orNil()
}

// normalizeEmail lowercases and trims an email address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wastewise/internal/auth"
	apperrors "wastewise/internal/errors"
	"wastewise/internal/model"
	"wastewise/internal/repository"
)

// SignupInput carries the fields required to create an account.
type SignupInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *model.User
}

// AuthService handles authentication operations.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Profile(ctx context.Context, userID uint) (*model.User, error)
}

type authService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	hasher    auth.PasswordHasher
	activity  ActivityRecorder
	dummyHash string
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService, hasher auth.PasswordHasher, activity ActivityRecorder) AuthService {
	// Compared against when the email is unknown so both failure paths pay for a hash check.
	dummy, _ := hasher.Hash("wastewise-login-placeholder")
	return &authService{
		users:     users,
		tokens:    tokens,
		hasher:    hasher,
		activity:  activity,
		dummyHash: dummy,
	}
}

// Signup creates a new user with a hashed password. It does not log the user in.
func (s *authService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, apperrors.Validation("username, email and password are required")
	}
	if !model.ValidRole(in.Role) {
		return nil, apperrors.Validation("role must be one of %s", strings.Join(model.Roles, ", "))
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrDuplicateEmail
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         in.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.activity.Record(ctx, model.ActivityLog{UserID: user.ID, Action: model.ActionSignup, SubjectID: user.ID, Detail: user.Role})
	return user, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password fail identically.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.hasher.Compare(s.dummyHash, password)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(auth.Identity{ID: user.ID, Username: user.Username, Role: user.Role})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.activity.Record(ctx, model.ActivityLog{UserID: user.ID, Action: model.ActionLogin, SubjectID: user.ID})
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Profile returns the stored user for the authenticated caller.
func (s *authService) Profile(ctx context.Context, userID uint) (*model.User, error) {
	return s.users.FindByID(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

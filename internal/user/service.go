package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"activity-platform/internal/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidInput marks boundary validation failures; handlers map it to 400.
	ErrInvalidInput = errors.New("user: invalid input")

	// ErrInvalidCredentials deliberately covers both unknown email and wrong
	// password so responses do not leak which one failed.
	ErrInvalidCredentials = errors.New("user: email or password incorrect")

	ErrInactiveUser = errors.New("user: account is inactive")
)

// Service implements registration, login and profile lookup.
type Service struct {
	repo  Repository
	auth  *auth.Manager
	clock func() time.Time
}

func NewService(repo Repository, authManager *auth.Manager) *Service {
	return &Service{repo: repo, auth: authManager, clock: time.Now}
}

func (s *Service) Register(ctx context.Context, name, email, password string) (User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if len(name) < 2 {
		return User{}, fmt.Errorf("%w: name must be at least 2 characters", ErrInvalidInput)
	}
	if email == "" {
		return User{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(password) < 6 {
		return User{}, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.clock().UTC()
	u := User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  string(hash),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.repo.Create(ctx, u)
}

// Login validates credentials and returns a signed access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !u.IsActive {
		return "", ErrInactiveUser
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.auth.Issue(s.clock(), u.ID)
}

func (s *Service) Profile(ctx context.Context, id string) (User, error) {
	return s.repo.FindByID(ctx, id)
}

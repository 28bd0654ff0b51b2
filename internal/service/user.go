package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/lightbnb/lightbnb/internal/auth"
	"github.com/lightbnb/lightbnb/internal/domain"
	"github.com/lightbnb/lightbnb/internal/event"
	"github.com/lightbnb/lightbnb/internal/repository"
	apperrors "github.com/lightbnb/lightbnb/pkg/errors"
)

// UserService implements registration, login and profile lookup.
type UserService struct {
	users      repository.UserRepository
	jwtManager *auth.JWTManager
	events     event.Publisher
	logger     *slog.Logger
	bcryptCost int
}

// NewUserService creates a new user service.
func NewUserService(
	users repository.UserRepository,
	jwtManager *auth.JWTManager,
	events event.Publisher,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:      users,
		jwtManager: jwtManager,
		events:     events,
		logger:     logger,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// RegisterInput holds the parameters for registering a new user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register hashes the password, stores the user and starts a session.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.Session, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if input.Name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}
	if input.Email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}
	if input.Password == "" {
		return nil, apperrors.InvalidInput("password is required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.AddUser(ctx, &domain.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
	})
	if err != nil {
		return nil, fmt.Errorf("add user: %w", err)
	}

	session, err := s.newSession(user)
	if err != nil {
		return nil, err
	}

	if err := s.events.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user registered", slog.Int64("user_id", user.ID))
	return session, nil
}

// Login checks the credentials and starts a session. Unknown emails and
// wrong passwords produce the same error.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if email == "" || password == "" {
		return nil, apperrors.InvalidInput("email and password are required")
	}

	user, err := s.users.GetUserWithEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	s.logger.InfoContext(ctx, "user logged in", slog.Int64("user_id", user.ID))
	return s.newSession(user)
}

// GetProfile returns the user with the given id.
func (s *UserService) GetProfile(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetUserWithID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *UserService) newSession(user *domain.User) (*domain.Session, error) {
	token, err := s.jwtManager.Generate(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &domain.Session{User: user, Token: token}, nil
}

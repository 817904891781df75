package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"myShop/domain"
	"myShop/pkg/logger"
	"myShop/pkg/metrics"
	"myShop/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type TokenManager interface {
	GenerateJWT(subject string) (string, error)
	ParseJWT(token string) (*utils.Claims, error)
}

type userService struct {
	userRepo UserRepository
	validate *validator.Validate
	tokens   TokenManager
}

func NewUserService(userRepo UserRepository, validate *validator.Validate, tokens TokenManager) *userService {
	return &userService{
		userRepo: userRepo,
		validate: validate,
		tokens:   tokens,
	}
}

// Register creates the account and returns a bearer token for it.
func (s *userService) Register(ctx context.Context, user *domain.User) (string, domain.User, error) {
	email := strings.TrimSpace(user.Email)

	if err := s.validate.Var(email, "required,email"); err != nil {
		logger.Warn("Invalid email format", "error", err)
		return "", domain.User{}, fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Warn("Invalid user password", "error", err)
		return "", domain.User{}, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrValidation)
	}

	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		logger.Info("Email already registered", "email", email)
		return "", domain.User{}, domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		logger.Error("Failed to look up email", "error", err)
		return "", domain.User{}, err
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		return "", domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := domain.User{
		Email:          email,
		HashedPassword: string(passwordHash),
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		IsActive:       true,
	}

	// a concurrent registration can still lose the race on the unique index
	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", "error", err)
		return "", domain.User{}, err
	}

	token, err := s.tokens.GenerateJWT(newUser.Email)
	if err != nil {
		logger.Error("Failed to generate token", "error", err)
		return "", domain.User{}, fmt.Errorf("failed to generate token: %w", err)
	}

	metrics.UserRegistrations.Inc()
	logger.Info("User registered", "user_id", newUser.ID)

	return token, newUser, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.UserLogins.WithLabelValues("invalid_credentials").Inc()
			return "", domain.User{}, domain.ErrInvalidCredentials
		}
		logger.Error("Failed to find user by email", "error", err)
		return "", domain.User{}, err
	}

	if !utils.CheckPassword(password, user.HashedPassword) {
		metrics.UserLogins.WithLabelValues("invalid_credentials").Inc()
		logger.Info("User password incorrect", "user_id", user.ID)
		return "", domain.User{}, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateJWT(user.Email)
	if err != nil {
		logger.Error("Failed to generate token", "error", err)
		return "", domain.User{}, fmt.Errorf("failed to generate token: %w", err)
	}

	metrics.UserLogins.WithLabelValues("success").Inc()

	return token, user, nil
}

// Authenticate resolves a bearer token to its user. Every failure is
// reported as domain.ErrUnauthorized.
func (s *userService) Authenticate(ctx context.Context, token string) (domain.User, error) {
	claims, err := s.tokens.ParseJWT(token)
	if err != nil {
		logger.Debug("Invalid token", "error", err)
		return domain.User{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	user, err := s.userRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			logger.Error("Failed to resolve token subject", "error", err)
		}
		return domain.User{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

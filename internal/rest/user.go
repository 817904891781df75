package rest

import (
	"context"
	"net/http"
	"time"

	"myShop/domain"
	"myShop/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	Register(ctx context.Context, user *domain.User) (string, domain.User, error)
	Login(ctx context.Context, email, password string) (string, domain.User, error)
	GetUserByID(ctx context.Context, id uint) (domain.User, error)
}

type UserHandler struct {
	userService UserService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type UserRegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var reqUser UserRegisterRequest

	if err := c.Bind(&reqUser); err != nil {
		logger.FromEcho(c).Debug("Invalid request body")
		return badRequest(c, "invalid request body")
	}

	if err := h.validator.Struct(&reqUser); err != nil {
		return validationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, _, err := h.userService.Register(ctx, &domain.User{
		Email:     reqUser.Email,
		Password:  reqUser.Password,
		FirstName: reqUser.FirstName,
		LastName:  reqUser.LastName,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *UserHandler) Login(c echo.Context) error {
	var reqUser UserLoginRequest

	if err := c.Bind(&reqUser); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.validator.Struct(&reqUser); err != nil {
		return validationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, _, err := h.userService.Login(ctx, reqUser.Email, reqUser.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me returns the authenticated user.
func (h *UserHandler) Me(c echo.Context) error {
	if user, ok := c.Get("user").(domain.User); ok {
		return c.JSON(http.StatusOK, user)
	}

	userID, ok := currentUserID(c)
	if !ok {
		return writeError(c, domain.ErrUnauthorized)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.GetUserByID(ctx, userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

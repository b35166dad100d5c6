package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sportlink/backend/config"
	"github.com/sportlink/backend/internal/models"
	"github.com/sportlink/backend/internal/user"
	"github.com/sportlink/backend/pkg/logger"
	"github.com/sportlink/backend/pkg/responses"
	"github.com/sportlink/backend/pkg/token"
	"github.com/sportlink/backend/pkg/utils"
	"github.com/sportlink/backend/pkg/validator"
)

// AuthController handles registration, login and token verification.
type AuthController struct {
	users  user.UserRepository
	config *config.Config
}

// NewAuthController creates a new AuthController.
func NewAuthController(users user.UserRepository, cfg *config.Config) *AuthController {
	return &AuthController{users: users, config: cfg}
}

// Register godoc
// @Summary      Register a new user
// @Description  Create a user with name, email, password and role. The matching role profile is created alongside.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body  RegisterRequest  true  "Registration details"
// @Success      201  {object}  responses.Envelope{data=AuthResponse}
// @Failure      400  {object}  responses.Envelope
// @Failure      409  {object}  responses.Envelope "Email already registered"
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, validator.Message(err))
		return
	}

	taken, err := ac.users.EmailTaken(req.Email)
	if err != nil {
		logger.Error("email lookup failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	if taken {
		responses.Conflict(c, "User with this email already exists")
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("password hashing failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}

	newUser := &user.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     req.Role,
	}
	if err := ac.users.Create(newUser); err != nil {
		// A concurrent registration can slip past the EmailTaken check
		// and land on the unique index instead.
		if models.IsDuplicateKeyErr(err) {
			responses.Conflict(c, "User with this email already exists")
			return
		}
		logger.Error("user creation failed", zap.Error(err))
		responses.InternalServerError(c, "User creation failed")
		return
	}

	tok, err := token.Generate(newUser.ID, ac.config.JWT.Secret, ac.config.JWT.ExpiryDays)
	if err != nil {
		logger.Error("token generation failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}

	created, err := ac.users.GetByID(newUser.ID)
	if err != nil {
		created = newUser
	}
	responses.Success(c, http.StatusCreated, "User registered successfully", AuthResponse{Token: tok, User: created})
}

// Login godoc
// @Summary      Log in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Email and password"
// @Success      200  {object}  responses.Envelope{data=AuthResponse}
// @Failure      401  {object}  responses.Envelope "Invalid credentials"
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, validator.Message(err))
		return
	}

	u, err := ac.users.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.Unauthorized(c, "Invalid email or password")
			return
		}
		logger.Error("user lookup failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}

	if !utils.CheckPassword(u.Password, req.Password) {
		responses.Unauthorized(c, "Invalid email or password")
		return
	}

	tok, err := token.Generate(u.ID, ac.config.JWT.Secret, ac.config.JWT.ExpiryDays)
	if err != nil {
		logger.Error("token generation failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}

	responses.Success(c, http.StatusOK, "Login successful", AuthResponse{Token: tok, User: u})
}

// VerifyToken godoc
// @Summary      Verify a session token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        token  body  VerifyTokenRequest  true  "Token to verify"
// @Success      200  {object}  responses.Envelope{data=user.User}
// @Failure      401  {object}  responses.Envelope
// @Router       /auth/verify-token [post]
func (ac *AuthController) VerifyToken(c *gin.Context) {
	var req VerifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, validator.Message(err))
		return
	}

	userID, err := token.Verify(req.Token, ac.config.JWT.Secret)
	if err != nil {
		if errors.Is(err, token.ErrExpiredToken) {
			responses.Unauthorized(c, "Token has expired")
			return
		}
		responses.Unauthorized(c, "Invalid token")
		return
	}

	u, err := ac.users.GetByID(userID)
	if err != nil {
		responses.Unauthorized(c, "Invalid token")
		return
	}

	responses.Success(c, http.StatusOK, "Token is valid", u)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Gangulr/finace/internal/errors"
	"github.com/Gangulr/finace/internal/middleware"
	"github.com/Gangulr/finace/internal/models"
	"github.com/Gangulr/finace/internal/services"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userService  services.UserServicer
	tokens       *middleware.TokenManager
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. secureCookie marks the access
// token cookie Secure, which production deployments behind TLS want.
func NewAuthHandler(userService services.UserServicer, tokens *middleware.TokenManager, secureCookie bool) *AuthHandler {
	return &AuthHandler{userService: userService, tokens: tokens, secureCookie: secureCookie}
}

// SignupRequest represents the registration request payload
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Username string `json:"username" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,password,max=128"`
}

// SigninRequest represents the login request payload
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents the user data in the response
type UserResponse struct {
	ID       string `json:"_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// SignupResponse is returned after a successful signup.
type SignupResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// SigninResponse is the signed-in user plus their access token.
type SigninResponse struct {
	UserResponse
	Token string `json:"token"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{ID: user.ID, Email: user.Email, Username: user.Username}
}

// Signup handles user registration
// @Summary     Register a new user
// @Description Register a new user with email, username and password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body SignupRequest true "User registration data"
// @Success     201 {object} SignupResponse "User created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Email already registered"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.Signup(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SignupResponse{
		Success: true,
		Message: "User created successfully",
		User:    newUserResponse(user),
	})
}

// Signin handles user login
// @Summary     Sign in
// @Description Authenticate a user, returning a token and setting it as an httpOnly cookie
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body SigninRequest true "User login credentials"
// @Success     200 {object} SigninResponse "User authenticated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/signin [post]
func (h *AuthHandler) Signin(c *gin.Context) {
	var req SigninRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.AttemptLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, token, int(h.tokens.TTL().Seconds()), "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, SigninResponse{UserResponse: newUserResponse(user), Token: token})
}

// Signout clears the access token cookie.
// @Summary     Sign out
// @Tags        auth
// @Produce     json
// @Success     200 {object} MessageResponse "Signed out"
// @Router      /auth/signout [post]
func (h *AuthHandler) Signout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Signed out successfully"})
}

// GetProfile returns the signed-in user.
// @Summary     Get user profile
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} UserResponse "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /auth/me [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"freelanceflow/internal/middleware"
	"freelanceflow/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
	log         *zap.Logger
}

func NewAuthHandler(authService *services.AuthService, userService *services.UserService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService, log: log}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a user
// @Summary Log in with email and password
// @Description Verify credentials and return a bearer token with the user profile
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{} "Token and user"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	token, user, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout revokes the current token
// @Summary Log out
// @Description Revoke the presented bearer token until its expiry
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Logged out"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromCtx(c)
	if err := h.authService.Logout(c.UserContext(), claims); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

// Me returns the authenticated user's profile
// @Summary Get the current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User "Authenticated user"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	user, err := h.userService.Profile(c.UserContext(), actor.ID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(user)
}

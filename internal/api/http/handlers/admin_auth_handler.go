package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/depomarket/retail-service/internal/api/dto"
	"github.com/depomarket/retail-service/internal/auth"
	"github.com/depomarket/retail-service/internal/service"
	apperrors "github.com/depomarket/retail-service/pkg/errorutil"
)

// AdminAuthHandler manages dashboard authentication endpoints.
type AdminAuthHandler struct {
	service *service.AuthService
}

// NewAdminAuthHandler constructs handler.
func NewAdminAuthHandler(authService *service.AuthService) *AdminAuthHandler {
	return &AdminAuthHandler{service: authService}
}

// Login POST /admin/auth/login.
func (h *AdminAuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	admin, token, exp, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		AdminID:   admin.ID,
		Name:      admin.Name,
		Role:      admin.Role,
	}})
}

// ChangePassword POST /admin/auth/password/change.
func (h *AdminAuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Admin == nil {
		return apperrors.NewUnauthorized("admin required")
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.NewPassword) < 8 {
		return apperrors.NewValidationError("new password must be at least 8 characters", nil)
	}
	if err := h.service.ChangePassword(c.UserContext(), principal.Admin.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"changed": true}})
}

// RequestPasswordReset POST /admin/auth/password/reset/request.
func (h *AdminAuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	token, err := h.service.RequestPasswordReset(c.UserContext(), req.Email)
	if err != nil {
		return err
	}
	// Token would be emailed; returned here only outside production flows.
	resp := fiber.Map{"requested": true}
	if token != "" {
		resp["token"] = token
	}
	return c.JSON(fiber.Map{"data": resp})
}

// ConfirmPasswordReset POST /admin/auth/password/reset/confirm.
func (h *AdminAuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirm
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.NewPassword) < 8 {
		return apperrors.NewValidationError("new password must be at least 8 characters", nil)
	}
	if err := h.service.ConfirmPasswordReset(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"reset": true}})
}

// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "guardianmed/internal/delivery/context"
	"guardianmed/internal/delivery/http/response"
	domainerrors "guardianmed/internal/domain/errors"
	"guardianmed/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SignInRequest is the body of the first login step.
type SignInRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=72"`
}

// VerifyOTPRequest is the body of the second login step.
// The code is only required here; its format is checked by the flow so a
// malformed code fails the same way as a wrong one.
type VerifyOTPRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	OTP      string `json:"otp" validate:"required,max=16"`
	Password string `json:"password" validate:"required,max=72"`
}

// SignUpRequest is the body of the registration request.
type SignUpRequest struct {
	Username string   `json:"username" validate:"required,max=50"`
	Email    string   `json:"email" validate:"required,email,max=255"`
	Password string   `json:"password" validate:"required,max=72"`
	Roles    []string `json:"roles" validate:"omitempty,dive,required"`
}

// SignInResponse acknowledges that a code was sent.
type SignInResponse struct {
	OTPSent bool   `json:"otpSent"`
	Message string `json:"message"`
}

// VerifyOTPResponse carries the issued token and the account's public attributes.
type VerifyOTPResponse struct {
	Token          string   `json:"token"`
	Type           string   `json:"type"`
	ID             string   `json:"id"`
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	Roles          []string `json:"roles"`
	SuccessMessage string   `json:"successMessage"`
}

// SignUpResponse summarizes the registration.
type SignUpResponse struct {
	Message string `json:"message"`
}

// MeResponse echoes the identity asserted by the bearer token.
type MeResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// bindAndValidate decodes the JSON body into req and validates it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("Malformed request body")
	}

	return errors.WithStack(c.Validate(req))
}

// SignIn handles the first login step.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.uc.BeginLogin(c.Request().Context(), &usecase.BeginLoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, SignInResponse{
		OTPSent: output.OTPSent,
		Message: output.Message,
	}, output.Message)
}

// VerifyOTP handles the second login step.
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req VerifyOTPRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.uc.VerifyLogin(c.Request().Context(), &usecase.VerifyLoginInput{
		Username: req.Username,
		Code:     req.OTP,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, VerifyOTPResponse{
		Token:          output.Token,
		Type:           output.Type,
		ID:             output.ID,
		Username:       output.Username,
		Email:          output.Email,
		Roles:          output.Roles,
		SuccessMessage: output.Message,
	}, output.Message)
}

// SignUp handles the registration request.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Roles:    req.Roles,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, SignUpResponse{Message: output.Message}, output.Message)
}

// Me returns the identity set by the authentication middleware.
func (h *AuthHandler) Me(c echo.Context) error {
	identity, ok := deliverycontext.IdentityFrom(c.Request().Context())
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	return response.Success(c, http.StatusOK, MeResponse{
		ID:       identity.AccountID.String(),
		Username: identity.Username,
		Roles:    identity.Roles,
	}, "")
}

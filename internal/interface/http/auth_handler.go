package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/application"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/pkg/helpers"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/pkg/response"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/pkg/validation"
)

type AuthHandler struct {
	Svc     *app.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *app.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type resetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetVerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,otp"`
}

type resetCompleteRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,otp"`
	NewPassword string `json:"new_password" binding:"required,pwd"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.OK(c, http.StatusOK, res, "login successful")
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Fail(c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.OK(c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.OK(c, http.StatusOK, gin.H{"logged_out": true}, "logged out")
}

// RequestReset always reports success so the endpoint cannot be used
// to probe which emails have accounts.
func (h *AuthHandler) RequestReset(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.Logger.WithError(err).Warn("password reset request failed")
		response.Fail(c, http.StatusInternalServerError, "could not start password reset", nil)
		return
	}
	response.OK(c, http.StatusAccepted, gin.H{"sent": true}, "reset code sent if the account exists")
}

func (h *AuthHandler) VerifyReset(c *gin.Context) {
	var req resetVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	remaining, err := h.Svc.VerifyPasswordReset(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		status, msg := resetErrStatus(err)
		response.Fail(c, status, msg, gin.H{"remaining_attempts": remaining})
		return
	}
	response.OK(c, http.StatusOK, gin.H{"valid": true, "remaining_attempts": remaining}, "code verified")
}

func (h *AuthHandler) CompleteReset(c *gin.Context) {
	var req resetCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.CompletePasswordReset(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		status, msg := resetErrStatus(err)
		response.Fail(c, status, msg, nil)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"reset": true}, "password updated")
}

func resetErrStatus(err error) (int, string) {
	switch {
	case errors.Is(err, app.ErrResetCodeMismatch):
		return http.StatusUnprocessableEntity, "reset code does not match"
	case errors.Is(err, app.ErrResetNotActive):
		return http.StatusGone, "reset token is no longer active"
	case errors.Is(err, app.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	default:
		return http.StatusInternalServerError, "password reset failed"
	}
}

package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"CareerGo/internal/api"
	"CareerGo/internal/apperr"
	"CareerGo/internal/config"
)

type Handler struct {
	service *Service
	cfg     *config.AppConfig
}

func NewHandler(service *Service, cfg *config.AppConfig) *Handler {
	return &Handler{service: service, cfg: cfg}
}

// ClaimsFrom pulls the authenticated claims the JWT middleware stored on the
// request context.
func ClaimsFrom(c echo.Context) (*JWTClaims, bool) {
	claims, ok := c.Get("user").(*JWTClaims)
	return claims, ok && claims != nil
}

// CallerID resolves the authenticated user id, or fails the request.
func CallerID(c echo.Context) (primitive.ObjectID, error) {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return primitive.NilObjectID, apperr.Unauthorized()
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, apperr.Unauthorized()
	}
	return id, nil
}

func (h *Handler) setCookie(c echo.Context, name, value string, maxAge time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.cfg.CookieDomain(),
		MaxAge:   int(maxAge.Seconds()),
		SameSite: http.SameSiteStrictMode,
		Secure:   h.cfg.IsProduction(),
		HttpOnly: true,
	})
}

func (h *Handler) clearCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.cfg.CookieDomain(),
		MaxAge:   -1,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.cfg.IsProduction(),
		HttpOnly: true,
	})
}

func cookieValue(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}
	if msg, ok := api.Validate(req); !ok {
		return api.BadRequest(c, msg)
	}

	user, err := h.service.Register(c.Request().Context(), req)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusCreated, "The operation has been successful", map[string]interface{}{"newUser": user})
}

func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}
	if msg, ok := api.Validate(req); !ok {
		return api.BadRequest(c, msg)
	}

	result, err := h.service.Login(c.Request().Context(), req)
	if err != nil {
		return api.Fail(c, err)
	}

	h.setCookie(c, "accessToken", result.AccessToken, h.cfg.AccessTokenExpiry)
	h.setCookie(c, "refreshToken", result.RefreshToken, h.cfg.RefreshTokenExpiry)
	return api.OK(c, http.StatusOK, "User logged in successfully", result)
}

func (h *Handler) VerifyAccount(c echo.Context) error {
	token := c.Param("token")
	code := c.QueryParam("code")
	if token == "" || code == "" {
		return api.BadRequest(c, "Token and code are required")
	}

	if err := h.service.VerifyAccount(c.Request().Context(), token, code); err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "Email verified", nil)
}

func (h *Handler) ResendVerification(c echo.Context) error {
	var req ResendVerificationRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}
	if msg, ok := api.Validate(req); !ok {
		return api.BadRequest(c, msg)
	}

	if err := h.service.ResendVerification(c.Request().Context(), req.EmailAddress); err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "The operation has been successful", nil)
}

func (h *Handler) Logout(c echo.Context) error {
	if err := h.service.Logout(c.Request().Context(), cookieValue(c, "refreshToken")); err != nil {
		return api.Fail(c, err)
	}
	h.clearCookie(c, "accessToken")
	h.clearCookie(c, "refreshToken")
	return api.OK(c, http.StatusOK, "User logged out successfully", nil)
}

func (h *Handler) RefreshToken(c echo.Context) error {
	accessToken, err := h.service.Refresh(c.Request().Context(), cookieValue(c, "refreshToken"))
	if err != nil {
		return api.Fail(c, err)
	}
	h.setCookie(c, "accessToken", accessToken, h.cfg.AccessTokenExpiry)
	return api.OK(c, http.StatusOK, "Refresh token found", map[string]string{"accessToken": accessToken})
}

func (h *Handler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}
	if msg, ok := api.Validate(req); !ok {
		return api.BadRequest(c, msg)
	}

	if err := h.service.ForgotPassword(c.Request().Context(), req.EmailAddress); err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "Reset password link sent", nil)
}

func (h *Handler) ResetPassword(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return api.BadRequest(c, "Token is required")
	}

	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}
	if msg, ok := api.Validate(req); !ok {
		return api.BadRequest(c, msg)
	}

	if err := h.service.ResetPassword(c.Request().Context(), token, req.NewPassword); err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "Password reset successfully", nil)
}

func (h *Handler) ChangePassword(c echo.Context) error {
	callerID, err := CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}
	if msg, ok := api.Validate(req); !ok {
		return api.BadRequest(c, msg)
	}

	if err := h.service.ChangePassword(c.Request().Context(), callerID, req); err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "Password changed successfully", nil)
}

func (h *Handler) SelfIdentification(c echo.Context) error {
	callerID, err := CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}

	identity, err := h.service.SelfIdentify(c.Request().Context(), callerID)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "The operation has been successful", identity)
}

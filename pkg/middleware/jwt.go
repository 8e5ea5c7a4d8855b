package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"CareerGo/internal/api"
	"CareerGo/internal/apperr"
	"CareerGo/internal/auth"
	"CareerGo/internal/config"
)

// JWT authenticates requests from the accessToken cookie, falling back to a
// bearer Authorization header, and stores the claims on the request context.
func JWT(cfg *config.AppConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := ""
			if cookie, err := c.Cookie("accessToken"); err == nil {
				tokenString = cookie.Value
			}
			if tokenString == "" {
				header := c.Request().Header.Get("Authorization")
				tokenString = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			}
			if tokenString == "" {
				return api.Fail(c, apperr.Unauthorized())
			}

			claims, err := auth.ValidateJWT(tokenString, cfg.AccessTokenSecret)
			if err != nil {
				return api.Fail(c, apperr.Unauthorized())
			}
			c.Set("user", claims)
			return next(c)
		}
	}
}

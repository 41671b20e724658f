// file: internals/middlewares/auth_middleware.go
package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"sekolahku_backend/internals/configs"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

/* =========================================================
   JWT AUTH
   Verifies the bearer token and copies identity claims into
   request locals. Everything after this middleware trusts the
   locals, never the raw token.
========================================================= */

func JWTAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(fiber.HeaderAuthorization)
		if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Missing bearer token")
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(configs.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid token claims")
		}

		setLocal(c, helperAuth.LocUserID, claims["id"])
		setLocal(c, helperAuth.LocRole, claims["role"])
		setLocal(c, helperAuth.LocRoleID, claims["role_id"])
		setLocal(c, helperAuth.LocOrganizationID, claims["organization_id"])
		return c.Next()
	}
}

func setLocal(c *fiber.Ctx, key string, v interface{}) {
	if s, ok := v.(string); ok && s != "" {
		c.Locals(key, s)
	}
}

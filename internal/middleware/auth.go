package middleware

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"yatube/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// AuthRequired is a guard for routes that need an authenticated identity.
// Anonymous callers are redirected to the login view with the originally
// requested path carried in the "next" query parameter; they never reach the
// wrapped handler.
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := identityFromRequest(c)
		if !ok {
			return redirectToLogin(c)
		}
		setIdentity(c, userID)
		return c.Next()
	}
}

// OptionalUser resolves the identity when a valid token is present and
// continues anonymously otherwise. Used by public listing and detail views
// that only need the viewer for informational flags.
func OptionalUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID, ok := identityFromRequest(c); ok {
			setIdentity(c, userID)
		}
		return c.Next()
	}
}

// setIdentity records the resolved identity in Fiber locals and syncs it to
// the request context so the context-aware logger sees it downstream.
func setIdentity(c *fiber.Ctx, userID uint) {
	c.Locals("userID", userID)
	c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))
}

func redirectToLogin(c *fiber.Ctx) error {
	loginURL := "/auth/login/"
	if cfg != nil && cfg.LoginURL != "" {
		loginURL = cfg.LoginURL
	}
	return c.Redirect(loginURL+"?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusFound)
}

// identityFromRequest extracts and validates the caller's identity from the
// Authorization header or, for browser clients, the auth_token cookie.
func identityFromRequest(c *fiber.Ctx) (uint, bool) {
	tokenString := ""

	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return 0, false
		}
		tokenString = parts[1]
	} else {
		tokenString = c.Cookies("auth_token")
	}
	if tokenString == "" {
		return 0, false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	// Validate issuer and audience
	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "yatube" {
		return 0, false
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "yatube-client" {
		return 0, false
	}

	// User ID travels in the "sub" claim (subject claim per RFC 7519)
	subClaim, ok := claims["sub"]
	if !ok {
		return 0, false
	}
	subStr, ok := subClaim.(string)
	if !ok {
		return 0, false
	}

	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, false
	}

	return uint(userID), true
}

package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	OrgContextKey  = "organization_id"
	UserContextKey = "user_id"
)

// AuthRequired validates the access token issued by the CRUD layer and
// scopes the request to the organization named in its claims.
func AuthRequired(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Missing authorization header",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Invalid authorization header format",
			})
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Invalid or expired token",
			})
		}

		orgClaim, _ := claims["organization_id"].(string)
		orgID, err := uuid.Parse(orgClaim)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Token is not scoped to an organization",
			})
		}

		c.Locals(OrgContextKey, orgID)
		if userClaim, ok := claims["sub"].(string); ok {
			if userID, err := uuid.Parse(userClaim); err == nil {
				c.Locals(UserContextKey, userID)
			}
		}

		return c.Next()
	}
}

func GetOrganizationID(c *fiber.Ctx) uuid.UUID {
	orgID, ok := c.Locals(OrgContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return orgID
}

func GetUserID(c *fiber.Ctx) *uuid.UUID {
	userID, ok := c.Locals(UserContextKey).(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

package middleware

import (
	"errors"
	"fmt"
	"goodreads/config"
	"goodreads/database"
	"goodreads/store"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// TokenTTL is how long an API token stays valid.
const TokenTTL = 24 * time.Hour

var errInvalidToken = errors.New("invalid or expired token")

// GenerateJWT generates a JWT token for the user
func GenerateJWT(userID uint, username string) (string, error) {
	claims := jwt.MapClaims{
		"userId":   userID,
		"username": username,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTKey))
}

// ParseJWT validates tokenString and returns the user id it was issued for.
func ParseJWT(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return 0, errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errInvalidToken
	}
	// JWT numbers decode as float64
	userID, ok := claims["userId"].(float64)
	if !ok || userID < 1 {
		return 0, errInvalidToken
	}
	return uint(userID), nil
}

// APIAuthMiddleware lets a request through when it carries a session
// (resolved earlier by LoadUser) or a valid bearer token.
func APIAuthMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		if CurrentUser(c) != nil {
			return c.Next()
		}
		return Detail(c, fiber.StatusUnauthorized, "Authentication credentials were not provided.")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return Detail(c, fiber.StatusUnauthorized, "Invalid Authorization header format.")
	}

	userID, err := ParseJWT(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return Detail(c, fiber.StatusUnauthorized, "Invalid or expired token.")
	}

	users := store.NewUserStore(database.Database.Db, config.AppConfig.SaltRound)
	user, err := users.Get(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Detail(c, fiber.StatusUnauthorized, "User not found.")
		}
		return err
	}

	setUser(c, user)
	return c.Next()
}

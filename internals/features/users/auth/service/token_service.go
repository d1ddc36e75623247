package service

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/RonaldMark17/agridata-backend/internals/configs"
	userModel "github.com/RonaldMark17/agridata-backend/internals/features/users/user/model"
)

const (
	accessTTLDefault  = 12 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

// CreateAccessToken issues the short-lived bearer token carried on every
// request.
func CreateAccessToken(user *userModel.UserModel) (string, error) {
	return signToken(user, "access", accessTTLDefault, configs.JWTSecret)
}

// CreateRefreshToken issues the longer-lived token accepted only by the
// refresh endpoint.
func CreateRefreshToken(user *userModel.UserModel) (string, error) {
	return signToken(user, "refresh", refreshTTLDefault, configs.JWTRefreshSecret)
}

func signToken(user *userModel.UserModel, tokenType string, ttl time.Duration, secret string) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", errors.New("JWT secret is not configured")
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(user.ID), 10),
		"role": user.Role,
		"type": tokenType,
		"jti":  uuid.New().String(),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies signature and expiry and returns the claims.
// tokenType selects which secret applies.
func ParseToken(tokenString, tokenType string) (jwt.MapClaims, error) {
	secret := configs.JWTSecret
	if tokenType == "refresh" {
		secret = configs.JWTRefreshSecret
	}
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("JWT secret is not configured")
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}); err != nil {
		return nil, err
	}
	if typ, _ := claims["type"].(string); typ != tokenType {
		return nil, errors.New("wrong token type")
	}
	return claims, nil
}

// TokenSubject extracts the user id from a parsed token.
func TokenSubject(claims jwt.MapClaims) (uint, error) {
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid sub claim")
	}
	return uint(id), nil
}

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Wizzel1/cuppl-sub000/internal/config"
	"github.com/Wizzel1/cuppl-sub000/internal/models"
)

type Claims struct {
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	secret    []byte
	expiresIn time.Duration
}

func NewJWTManager(cfg config.JWTConfig) *JWTManager {
	expiresIn := 7 * 24 * time.Hour // default 7 days
	if duration, err := time.ParseDuration(cfg.ExpiresIn); err == nil {
		expiresIn = duration
	}

	return &JWTManager{
		secret:    []byte(cfg.Secret),
		expiresIn: expiresIn,
	}
}

func (j *JWTManager) GenerateToken(account *models.Account) (string, error) {
	claims := Claims{
		AccountID: account.ID,
		Username:  account.Username,
		Email:     account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

func (j *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

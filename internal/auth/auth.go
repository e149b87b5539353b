package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserExists         = errors.New("user already exists")
)

type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	jwt.RegisteredClaims
}

type user struct {
	id           uuid.UUID
	passwordHash []byte
}

// Authenticator manages local users and HS256 tokens.
type Authenticator struct {
	secret   []byte
	tokenTTL time.Duration
	users    map[string]user
	mu       sync.RWMutex
}

func New(secret string, tokenTTL time.Duration) *Authenticator {
	return &Authenticator{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		users:    make(map[string]user),
	}
}

func (a *Authenticator) AddUser(username, password string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.users[username]; exists {
		return ErrUserExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	a.users[username] = user{id: uuid.New(), passwordHash: hash}
	return nil
}

// Authenticate verifies the password and returns a signed access token.
func (a *Authenticator) Authenticate(username, password string) (string, error) {
	a.mu.RLock()
	u, exists := a.users[username]
	a.mu.RUnlock()

	if !exists {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := &Claims{
		UserID:   u.id,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.id.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

func (a *Authenticator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// Package auth verifies connection tokens and resolves them to users.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fishtable/internal/model"
	"fishtable/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Verify(tokenString string) (model.Principal, error) {
	if tokenString == "" {
		return model.Principal{}, fmt.Errorf("%w: missing token", model.ErrUnauthorized)
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: %v", model.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return model.Principal{}, fmt.Errorf("%w: invalid token claims", model.ErrUnauthorized)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: invalid user id", model.ErrUnauthorized)
	}
	role, err := model.ParseRole(claims.Role)
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: %v", model.ErrUnauthorized, err)
	}
	return model.Principal{UserID: userID, Role: role}, nil
}

// GenerateToken signs an HS256 token for the principal.
func GenerateToken(secret string, p model.Principal, expiration time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: p.UserID.String(),
		Role:   p.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Directory resolves users by id or by connection token.
type Directory struct {
	users    repository.UserRepository
	verifier *Verifier
}

func NewDirectory(users repository.UserRepository, verifier *Verifier) *Directory {
	return &Directory{users: users, verifier: verifier}
}

func (d *Directory) GetByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return d.users.GetUser(ctx, userID)
}

// GetByConnectionToken verifies the token and loads the user it names. The
// stored role wins over the role in the token.
func (d *Directory) GetByConnectionToken(ctx context.Context, token string) (*model.User, error) {
	p, err := d.verifier.Verify(token)
	if err != nil {
		return nil, err
	}
	user, err := d.users.GetUser(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: unknown user", model.ErrUnauthorized)
		}
		return nil, err
	}
	return user, nil
}

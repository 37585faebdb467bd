package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/ld-portal/internal"
	"github.com/frahmantamala/ld-portal/internal/core/common/validation"
	coreuser "github.com/frahmantamala/ld-portal/internal/core/user"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type Repository interface {
	// FindByEmail returns nil, nil when no account matches.
	FindByEmail(ctx context.Context, email string) (*Credentials, error)
}

// Service is the main auth service with dependencies
type Service struct {
	repo           Repository
	tokenGenerator TokenGenerator
	logger         *slog.Logger
}

func NewService(repo Repository, tokenGen TokenGenerator, logger *slog.Logger) *Service {
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		logger:         logger,
	}
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Secret:         []byte(secret),
		AccessTokenTTL: ttl,
		now:            time.Now,
	}
}

// Authenticate validates credentials and returns a bearer token.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (AuthTokens, error) {
	dto.Username = strings.TrimSpace(dto.Username)
	if err := validation.Struct(dto); err != nil {
		return AuthTokens{}, err
	}

	creds, err := s.repo.FindByEmail(ctx, dto.Username)
	if err != nil {
		return AuthTokens{}, fmt.Errorf("find credentials: %w", err)
	}
	if creds == nil || !CheckPassword(creds.PasswordHash, dto.Password) {
		s.logger.WarnContext(ctx, "login rejected", "email", dto.Username)
		return AuthTokens{}, internal.ErrInvalidCredentials
	}
	if !creds.IsActive {
		return AuthTokens{}, internal.ErrUserInactive
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(creds.Email, creds.Role)
	if err != nil {
		return AuthTokens{}, fmt.Errorf("generate access token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in", "user_id", creds.ID, "role", creds.Role)
	return AuthTokens{AccessToken: accessToken, TokenType: "bearer"}, nil
}

// ValidateAccessToken validates access token and returns claims
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// Authorize resolves a bearer token to the current, active principal. A token
// whose role claim no longer matches the stored role is rejected.
func (s *Service) Authorize(ctx context.Context, tokenString string) (*User, error) {
	claims, err := s.tokenGenerator.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	creds, err := s.repo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("find principal: %w", err)
	}
	if creds == nil {
		return nil, internal.ErrInvalidToken
	}
	if !creds.IsActive {
		return nil, internal.ErrUserInactive
	}
	if claims.Role != string(creds.Role) {
		return nil, internal.ErrInvalidToken
	}

	u := creds.User
	return &u, nil
}

// GenerateAccessToken signs an HS256 token whose subject is the user's email.
func (j *JWTTokenGenerator) GenerateAccessToken(email string, role coreuser.Role) (string, error) {
	now := j.now()
	claims := &Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.AccessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(j.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, internal.ErrInvalidToken
	}
	return claims, nil
}

// HashPassword creates a bcrypt hash of the password
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

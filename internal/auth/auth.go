package auth

import (
	"context"
	"time"

	coreuser "github.com/frahmantamala/ld-portal/internal/core/user"
	"github.com/golang-jwt/jwt/v5"
)

// User is the authenticated principal stored in the request context.
type User struct {
	ID           int64         `json:"id"`
	Email        string        `json:"email"`
	FullName     string        `json:"full_name"`
	Role         coreuser.Role `json:"role"`
	DepartmentID *int64        `json:"department_id,omitempty"`
}

func (u *User) HasRole(roles ...coreuser.Role) bool {
	return u != nil && u.Role.In(roles...)
}

// Credentials is what the repository returns for a login attempt.
type Credentials struct {
	User
	PasswordHash string
	IsActive     bool
}

type AuthTokens struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Claims carries the user's email as the subject and the role at issue time.
// Authorize rejects the token once the role stops matching the account.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and verifies access tokens.
type TokenGenerator interface {
	GenerateAccessToken(email string, role coreuser.Role) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type JWTTokenGenerator struct {
	Secret         []byte
	AccessTokenTTL time.Duration
	now            func() time.Time
}

type ctxKey string

const ContextUserKey ctxKey = "user"

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok && u != nil
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/frahmantamala/ld-portal/internal"
	"github.com/frahmantamala/ld-portal/internal/transport"
)

type ServiceAPI interface {
	Authenticate(ctx context.Context, dto LoginDTO) (AuthTokens, error)
	Authorize(ctx context.Context, tokenString string) (*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

// Login handles POST /auth/login. It accepts the OAuth2 password form and,
// for convenience, the same fields as JSON.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := h.DecodeJSON(r, &dto); err != nil {
			h.HandleError(w, r, err)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			h.HandleError(w, r, internal.NewValidationError("invalid form body", internal.ErrCodeInvalidBody))
			return
		}
		dto = LoginDTO{
			Username: r.PostForm.Get("username"),
			Password: r.PostForm.Get("password"),
		}
	}

	tokens, err := h.Service.Authenticate(r.Context(), dto)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// principal in the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			h.WriteAppError(w, internal.ErrMissingToken)
			return
		}

		user, err := h.Service.Authorize(r.Context(), token)
		if err != nil {
			w.Header().Set("WWW-Authenticate", "Bearer")
			h.HandleError(w, r, err)
			return
		}

		ctx := ContextWithUser(r.Context(), user)
		ctx = internal.ContextWithUserID(ctx, user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/ld-portal/internal"
	coreuser "github.com/frahmantamala/ld-portal/internal/core/user"
	"github.com/frahmantamala/ld-portal/internal/transport"
)

type RBACAuthorization struct {
	*transport.BaseHandler
	checker RoleChecker
}

func NewRBACAuthorization(checker RoleChecker, logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{
		BaseHandler: transport.NewBaseHandler(logger),
		checker:     checker,
	}
}

// RequireRoles lets the request through only when the principal's role is in roles.
func (ra *RBACAuthorization) RequireRoles(roles ...coreuser.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				ra.Logger.WarnContext(r.Context(), "authorization check failed: user not found in context")
				ra.WriteAppError(w, internal.ErrMissingToken)
				return
			}

			allowed, err := ra.checker.HasAnyRole(r.Context(), user, roles)
			if err != nil {
				ra.HandleError(w, r, err)
				return
			}

			if !allowed {
				ra.Logger.WarnContext(r.Context(), "access denied: role not allowed",
					"user_id", user.ID,
					"role", user.Role,
					"required_roles", roles)
				ra.WriteAppError(w, internal.ErrInsufficientRole)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.RequireRoles(coreuser.Admins...)
}

func (ra *RBACAuthorization) RequireSupervisor() func(http.Handler) http.Handler {
	return ra.RequireRoles(coreuser.Supervisors...)
}

func (ra *RBACAuthorization) RequireSuperAdmin() func(http.Handler) http.Handler {
	return ra.RequireRoles(coreuser.RoleSuperAdmin)
}

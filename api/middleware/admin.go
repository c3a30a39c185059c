package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/pariney/saree-storefront/api/responses"
	pkgerrors "github.com/pariney/saree-storefront/pkg/errors"
	"github.com/pariney/saree-storefront/pkg/logger"
)

// AdminChecker answers whether a user's profile carries the admin role.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

// RequireAdmin must run after Auth. The identity check comes first so an
// anonymous caller always sees 401, never 403.
func RequireAdmin(checker AdminChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userID, err := uuid.Parse(UserIDFromContext(ctx))
			if err != nil || userID == uuid.Nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, pkgerrors.MsgAuthenticationRequired))
				return
			}

			if checker == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin checker unavailable"))
				return
			}
			isAdmin, err := checker.IsAdmin(ctx, userID)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			if !isAdmin {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, pkgerrors.MsgAdminRequired))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

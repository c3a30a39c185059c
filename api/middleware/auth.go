package middleware

import (
	"net/http"

	"github.com/pariney/saree-storefront/api/responses"
	"github.com/pariney/saree-storefront/api/validators"
	pkgAuth "github.com/pariney/saree-storefront/pkg/auth"
	"github.com/pariney/saree-storefront/pkg/auth/session"
	"github.com/pariney/saree-storefront/pkg/config"
	pkgerrors "github.com/pariney/saree-storefront/pkg/errors"
	"github.com/pariney/saree-storefront/pkg/logger"
)

// Auth resolves the bearer token to an identity. Every failure, including an
// unreachable session store, is answered with the same 401.
func Auth(cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return identity(cfg, verifier, false, logg)
}

// AuthAllowExpired accepts expired but otherwise valid tokens and skips the
// session lookup. Logout and refresh sit behind it.
func AuthAllowExpired(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return identity(cfg, nil, true, logg)
}

func identity(cfg config.JWTConfig, verifier session.AccessSessionChecker, allowExpired bool, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reject := func(err error) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, pkgerrors.MsgAuthenticationRequired))
			}

			token, err := validators.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				reject(err)
				return
			}

			parse := pkgAuth.ParseAccessToken
			if allowExpired {
				parse = pkgAuth.ParseAccessTokenAllowExpired
			}
			claims, err := parse(cfg, token)
			if err != nil {
				reject(err)
				return
			}
			if claims.ID == "" {
				reject(nil)
				return
			}

			if verifier != nil {
				ok, err := verifier.HasSession(r.Context(), claims.ID)
				if err != nil {
					reject(err)
					return
				}
				if !ok {
					reject(nil)
					return
				}
			}

			ctx := WithIdentity(r.Context(), claims.UserID.String(), claims.Email, claims.ID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package middleware

import (
	"fmt"
	"net/http"

	"github.com/pariney/saree-storefront/api/responses"
	pkgerrors "github.com/pariney/saree-storefront/pkg/errors"
	"github.com/pariney/saree-storefront/pkg/logger"
)

// Recoverer answers a panicking handler with the storefront's generic 500
// body. It runs inside RequestID so the log entry carries the request id.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// the server relies on this sentinel to drop the connection
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				ctx := r.Context()
				if logg != nil {
					ctx = logg.WithFields(ctx, map[string]any{
						"panic":  fmt.Sprint(rec),
						"method": r.Method,
						"path":   r.URL.Path,
					})
					logg.Error(ctx, "request.panic", fmt.Errorf("panic: %v", rec))
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeInternal, pkgerrors.MsgInternal))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

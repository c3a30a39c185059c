package controllers

import (
	"net/http"

	"github.com/pariney/saree-storefront/api/responses"
	"github.com/pariney/saree-storefront/internal/dashboard"
	"github.com/pariney/saree-storefront/internal/profiles"
	pkgerrors "github.com/pariney/saree-storefront/pkg/errors"
	"github.com/pariney/saree-storefront/pkg/logger"
)

// AdminListUsers returns every profile, newest first. Read-only.
func AdminListUsers(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		users, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteKeyed(w, http.StatusOK, "users", users)
	}
}

func AdminDashboard(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		summary, err := svc.Summary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

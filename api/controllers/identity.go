package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pariney/saree-storefront/api/middleware"
	authsvc "github.com/pariney/saree-storefront/internal/auth"
	pkgerrors "github.com/pariney/saree-storefront/pkg/errors"
)

func requestUserID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, pkgerrors.MsgAuthenticationRequired)
	}
	return id, nil
}

func requestIdentity(r *http.Request) (authsvc.Identity, error) {
	userID, err := requestUserID(r)
	if err != nil {
		return authsvc.Identity{}, err
	}
	accessID := middleware.AccessIDFromContext(r.Context())
	if accessID == "" {
		return authsvc.Identity{}, pkgerrors.New(pkgerrors.CodeUnauthorized, pkgerrors.MsgAuthenticationRequired)
	}
	return authsvc.Identity{
		UserID: userID,
		Email:  middleware.EmailFromContext(r.Context()),
		JTI:    accessID,
	}, nil
}

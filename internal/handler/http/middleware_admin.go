package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-identity-portal/internal/logger"
	"github.com/MKhiriev/go-identity-portal/internal/utils"
)

// adminOnly is an HTTP middleware that admits requests carrying a valid
// admin session.
//
// It reads the admin_access cookie, validates it via
// [service.AdminAuthService.ParseToken] and, on success, stores the session
// subject in the request context under [utils.AdminSubjectCtxKey].
//
// Requests without the cookie or with an invalid, expired or foreign token
// are rejected with 401 and {"message":"Unauthorized."}.
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		cookie, err := r.Cookie(adminCookieName)
		if err != nil || cookie.Value == "" {
			log.Debug().Err(ErrMissingAdminCookie).Send()
			writeMessage(w, MessageUnauthorized, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AdminAuthService.ParseToken(ctx, cookie.Value)
		if err != nil {
			log.Debug().Err(err).Msg("admin session rejected")
			writeMessage(w, MessageUnauthorized, http.StatusUnauthorized)
			return
		}

		ctx = context.WithValue(ctx, utils.AdminSubjectCtxKey, token.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

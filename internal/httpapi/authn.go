package httpapi

import (
	"errors"
	"net/http"

	"taskdeck.org/internal/auth"
	"taskdeck.org/internal/obs"
)

// Header names the clients use to carry tokens and the refresh user id.
const (
	headerAccessToken  = "x-access-token"
	headerRefreshToken = "x-refresh-token"
	headerUserID       = "_id"
)

// requireAccessToken verifies the x-access-token header and binds the subject
// user id to the request context. Missing, malformed, expired and forged
// tokens all get the same 401.
func (a *API) requireAccessToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := a.auth.Signer().Verify(r.Header.Get(headerAccessToken))
		if err != nil {
			writeError(w, r, http.StatusUnauthorized, "invalid or expired access token")
			return
		}
		ctx := auth.ContextWithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRefreshSession authenticates via the x-refresh-token and _id headers.
// "No such user", "no such session" and "session expired" are indistinguishable
// to the caller; only a store failure surfaces as a 500.
func (a *API) requireRefreshSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		refreshToken := r.Header.Get(headerRefreshToken)
		userID := r.Header.Get(headerUserID)

		sessions := a.auth.Sessions()
		user, err := sessions.FindUserBySessionToken(r.Context(), userID, refreshToken)
		if err != nil {
			if errors.Is(err, auth.ErrNotFound) {
				writeError(w, r, http.StatusUnauthorized, "refresh token has expired or the session is invalid")
				return
			}
			obs.LogRequest(map[string]any{
				"level": "error",
				"msg":   "refresh session lookup failed",
				"error": err.Error(),
			})
			writeError(w, r, http.StatusInternalServerError, "internal error")
			return
		}
		if err := sessions.ValidateSession(user, refreshToken); err != nil {
			writeError(w, r, http.StatusUnauthorized, "refresh token has expired or the session is invalid")
			return
		}

		ctx := auth.ContextWithUserID(r.Context(), user.ID)
		ctx = auth.ContextWithUser(ctx, user)
		ctx = auth.ContextWithRefreshToken(ctx, refreshToken)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

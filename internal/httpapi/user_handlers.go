package httpapi

import (
	"errors"
	"net/http"

	"taskdeck.org/internal/audit"
	"taskdeck.org/internal/auth"
	"taskdeck.org/internal/obs"
)

// userResponse is the public projection of a user. Name fields, the password
// hash and the session set never leave the service.
type userResponse struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

type signupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func setTokenHeaders(w http.ResponseWriter, pair auth.TokenPair) {
	w.Header().Set(headerAccessToken, pair.AccessToken)
	w.Header().Set(headerRefreshToken, pair.RefreshToken)
}

func (a *API) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, pair, err := a.auth.Signup(r.Context(), auth.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		var verr *auth.ValidationError
		if errors.As(err, &verr) {
			writeValidationError(w, r, verr)
			return
		}
		obs.LogRequest(map[string]any{
			"level": "error",
			"msg":   "signup failed",
			"error": err.Error(),
		})
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	ctx := auth.ContextWithUserID(r.Context(), user.ID)
	_ = audit.LogEvent(ctx, "user.signup", map[string]any{"email": user.Email})

	setTokenHeaders(w, pair)
	writeJSON(w, http.StatusCreated, userResponse{ID: user.ID, Email: user.Email})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, pair, err := a.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// Same response whether the email is unknown or the password wrong.
			writeError(w, r, http.StatusUnauthorized, "invalid email address and/or password")
			return
		}
		obs.LogRequest(map[string]any{
			"level": "error",
			"msg":   "login failed",
			"error": err.Error(),
		})
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	ctx := auth.ContextWithUserID(r.Context(), user.ID)
	_ = audit.LogEvent(ctx, "user.login", map[string]any{"email": user.Email})

	setTokenHeaders(w, pair)
	writeJSON(w, http.StatusOK, userResponse{ID: user.ID, Email: user.Email})
}

// handleAccessToken mints a fresh access token for a caller holding a valid
// refresh session. The session itself is untouched; only the short-lived
// token rolls over.
func (a *API) handleAccessToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "refresh token has expired or the session is invalid")
		return
	}

	token, err := a.auth.Signer().Issue(user.ID)
	if err != nil {
		obs.LogRequest(map[string]any{
			"level": "error",
			"msg":   "access token issue failed",
			"error": err.Error(),
		})
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	_ = audit.LogEvent(r.Context(), "user.token_refresh", nil)

	w.Header().Set(headerAccessToken, token)
	writeJSON(w, http.StatusOK, map[string]string{"accessToken": token})
}

package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type AuthHandler struct {
	store  *AuthStore
	logger *zap.Logger
}

func NewAuthHandler(store *AuthStore, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{store: store, logger: logger}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GetStatus tells the login screen whether to offer registration.
func (h *AuthHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(map[string]bool{"hasUsers": h.store.HasUsers()}))
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid request body"))
		return
	}
	if err := h.store.Register(r.Context(), body.Username, body.Password); err != nil {
		switch {
		case errors.Is(err, ErrUsernameRequired),
			errors.Is(err, ErrWeakPassword),
			errors.Is(err, ErrUserExists),
			errors.Is(err, ErrRegistrationClosed):
			writeJSON(w, http.StatusOK, Fail(err.Error()))
		default:
			h.logger.Error("register failed", zap.Error(err))
			writeJSON(w, http.StatusOK, Fail("could not create the account"))
		}
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"username": strings.TrimSpace(body.Username)}))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid request body"))
		return
	}
	token, err := h.store.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			writeJSON(w, http.StatusOK, Unauthorized("invalid username or password"))
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("could not open the session"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"token": token, "username": body.Username}))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Logout(r.Context(), bearerToken(r)); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("could not close the session"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(struct{}{}))
}

// GetSession returns the logged-in username for the presented token.
func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	username, ok := h.store.SessionUser(bearerToken(r))
	if !ok {
		writeJSON(w, http.StatusOK, Unauthorized("not logged in"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"username": username}))
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	return strings.TrimPrefix(auth, "Bearer ")
}

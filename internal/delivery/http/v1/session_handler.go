package v1

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"shade-storefront/internal/domain"
	"shade-storefront/internal/store"
	"shade-storefront/internal/usecase"
	"shade-storefront/pkg/logger"
	"shade-storefront/pkg/utils"
)

type SessionHandler struct {
	usecase *usecase.StorefrontUsecase
}

func NewSessionHandler(usecase *usecase.StorefrontUsecase) *SessionHandler {
	return &SessionHandler{usecase: usecase}
}

type sessionView struct {
	User      *domain.Session   `json:"user"`
	IsLoading bool              `json:"isLoading"`
	Status    domain.AuthStatus `json:"status"`
}

func newSessionView(session *store.SessionStore) sessionView {
	view := sessionView{IsLoading: session.IsLoading(), Status: session.Status()}
	if current, ok := session.Current(); ok {
		view.User = &current
	}
	return view
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sf, ok := openStorefront(w, r, h.usecase)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, newSessionView(sf.Session))
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		utils.WriteError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	sf, ok := openStorefront(w, r, h.usecase)
	if !ok {
		return
	}
	// A sign-in runs to completion even if the client goes away.
	_, err := sf.Session.Login(context.WithoutCancel(r.Context()), req.Email, req.Password)
	h.respond(w, r, sf.Session, err, "Login failed")
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Password == "" || req.Name == "" {
		utils.WriteError(w, http.StatusBadRequest, "email, password and name are required")
		return
	}

	sf, ok := openStorefront(w, r, h.usecase)
	if !ok {
		return
	}
	_, err := sf.Session.Register(context.WithoutCancel(r.Context()), req.Email, req.Password, req.Name)
	h.respond(w, r, sf.Session, err, "Registration failed")
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sf, ok := openStorefront(w, r, h.usecase)
	if !ok {
		return
	}
	sf.Session.Logout(r.Context())
	utils.WriteJSON(w, http.StatusOK, newSessionView(sf.Session))
}

// respond maps a sign-in outcome to a response. Provider detail stays in the
// logs; the client only sees failureMessage.
func (h *SessionHandler) respond(w http.ResponseWriter, r *http.Request, session *store.SessionStore, err error, failureMessage string) {
	switch {
	case err == nil:
		utils.WriteJSON(w, http.StatusOK, newSessionView(session))
	case errors.Is(err, domain.ErrAlreadyAuthenticated):
		utils.WriteError(w, http.StatusConflict, "Already signed in")
	case errors.Is(err, domain.ErrAuthFailure):
		utils.WriteError(w, http.StatusUnauthorized, failureMessage)
	default:
		logger.WithContext(r.Context()).Error().Err(err).Msg("Session request failed")
		utils.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

package transport

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"promotube-be/internal/logger"
	"promotube-be/internal/user"
)

type AuthHandler struct {
	users user.Service
}

func NewAuthHandler(users user.Service) *AuthHandler {
	return &AuthHandler{users: users}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailExists):
			WriteJSONError(w, http.StatusConflict, err.Error())
		case errors.Is(err, user.ErrInvalidInput):
			WriteJSONError(w, http.StatusBadRequest, err.Error())
		default:
			logger.FromCtx(r.Context()).Error("registration failed", zap.Error(err))
			WriteJSONError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	WriteJSON(w, http.StatusCreated, u)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			WriteJSONError(w, http.StatusUnauthorized, err.Error())
			return
		}
		logger.FromCtx(r.Context()).Error("login failed", zap.Error(err))
		WriteJSONError(w, http.StatusInternalServerError, "login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	WriteJSON(w, http.StatusOK, loginResponse{Token: token, User: u})
}

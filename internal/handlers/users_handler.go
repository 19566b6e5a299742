package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Elzoka/devconnecter/internal/middleware"
	"github.com/Elzoka/devconnecter/internal/models"
	"github.com/Elzoka/devconnecter/internal/services"
	"github.com/Elzoka/devconnecter/internal/token"
)

type UsersHandler struct {
	users  services.UserService
	issuer *token.Issuer
	logger *zap.Logger
}

func NewUsersHandler(users services.UserService, issuer *token.Issuer, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{
		users:  users,
		issuer: issuer,
		logger: logger,
	}
}

func (h *UsersHandler) Test(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"msg": "users works"})
}

func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{"error": "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	user, err := h.users.Register(r.Context(), &req)
	if err != nil {
		if err == services.ErrEmailExists {
			writeJSON(w, http.StatusBadRequest, errorBody{"email": "Email already exists"})
			return
		}
		h.logger.Error("register failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{"error": "Failed to create user"})
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UsersHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{"error": "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if err == services.ErrUserNotFound {
			writeJSON(w, http.StatusNotFound, errorBody{"email": "User not found"})
			return
		}
		h.logger.Error("login lookup failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{"error": "Login failed"})
		return
	}

	if !h.users.VerifyPassword(user, req.Password) {
		writeJSON(w, http.StatusBadRequest, errorBody{"password": "Password incorrect"})
		return
	}

	signed, err := h.issuer.Sign(user)
	if err != nil {
		h.logger.Error("token signing failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{"error": "Failed to generate token"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   "Bearer " + signed,
	})
}

func (h *UsersHandler) Current(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	writeJSON(w, http.StatusOK, map[string]string{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Elzoka/devconnecter/internal/middleware"
	"github.com/Elzoka/devconnecter/internal/models"
	"github.com/Elzoka/devconnecter/internal/services"
)

type ProfileHandler struct {
	profiles services.ProfileService
	users    services.UserService
	logger   *zap.Logger
}

func NewProfileHandler(profiles services.ProfileService, users services.UserService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		users:    users,
		logger:   logger,
	}
}

func (h *ProfileHandler) Test(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"msg": "profile works"})
}

// attachUser populates the owner snapshot on a profile read. Best-effort; a
// profile whose user record vanished is still returned.
func (h *ProfileHandler) attachUser(ctx context.Context, p *models.Profile) *models.Profile {
	user, err := h.users.GetByID(ctx, p.UserID)
	if err != nil {
		return p
	}
	p.User = &models.ProfileUser{
		ID:     user.ID,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	return p
}

func (h *ProfileHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	profile, err := h.profiles.GetByUserID(r.Context(), user.ID)
	if err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusNotFound, errorBody{"noprofile": "There is no profile for this user"})
			return
		}
		h.logger.Error("profile lookup failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{"error": "Failed to fetch profile"})
		return
	}

	writeJSON(w, http.StatusOK, h.attachUser(r.Context(), profile))
}

func (h *ProfileHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.GetAll(r.Context())
	if err != nil {
		h.logger.Error("profile listing failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{"error": "Failed to fetch profiles"})
		return
	}
	if len(profiles) == 0 {
		writeJSON(w, http.StatusNotFound, errorBody{"noprofiles": "There are no profiles"})
		return
	}

	for _, p := range profiles {
		h.attachUser(r.Context(), p)
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (h *ProfileHandler) GetByHandle(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	profile, err := h.profiles.GetByHandle(r.Context(), handle)
	if err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusNotFound, errorBody{"noprofile": "There is no profile for this user"})
			return
		}
		h.logger.Error("profile lookup failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{"error": "Failed to fetch profile"})
		return
	}

	writeJSON(w, http.StatusOK, h.attachUser(r.Context(), profile))
}

func (h *ProfileHandler) GetByUserID(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	profile, err := h.profiles.GetByUserID(r.Context(), userID)
	if err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusNotFound, errorBody{"noprofile": "There is no profile for this user"})
			return
		}
		h.logger.Error("profile lookup failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{"error": "Failed to fetch profile"})
		return
	}

	writeJSON(w, http.StatusOK, h.attachUser(r.Context(), profile))
}

func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req models.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{"error": "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	profile, err := h.profiles.Upsert(r.Context(), user.ID, &req)
	if err != nil {
		if err == services.ErrHandleTaken {
			writeJSON(w, http.StatusBadRequest, errorBody{"handle": "That handle already exists"})
			return
		}
		h.logger.Error("profile upsert failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{"error": "Failed to save profile"})
		return
	}

	writeJSON(w, http.StatusOK, h.attachUser(r.Context(), profile))
}

func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req models.ExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{"error": "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	profile, err := h.profiles.AddExperience(r.Context(), user.ID, &req)
	if err != nil {
		h.respondProfileMutation(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.attachUser(r.Context(), profile))
}

func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req models.EducationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{"error": "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	profile, err := h.profiles.AddEducation(r.Context(), user.ID, &req)
	if err != nil {
		h.respondProfileMutation(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.attachUser(r.Context(), profile))
}

func (h *ProfileHandler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	expID := chi.URLParam(r, "expID")

	profile, err := h.profiles.RemoveExperience(r.Context(), user.ID, expID)
	if err != nil {
		h.respondProfileMutation(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.attachUser(r.Context(), profile))
}

func (h *ProfileHandler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	eduID := chi.URLParam(r, "eduID")

	profile, err := h.profiles.RemoveEducation(r.Context(), user.ID, eduID)
	if err != nil {
		h.respondProfileMutation(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.attachUser(r.Context(), profile))
}

func (h *ProfileHandler) respondProfileMutation(w http.ResponseWriter, err error) {
	if err == services.ErrProfileNotFound {
		writeJSON(w, http.StatusNotFound, errorBody{"noprofile": "There is no profile for this user"})
		return
	}
	h.logger.Error("profile mutation failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorBody{"error": "Failed to update profile"})
}

// DeleteAccount removes the profile then the user. The two steps are not
// atomic; a crash in between leaves a user without a profile.
func (h *ProfileHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	if err := h.profiles.DeleteByUserID(r.Context(), user.ID); err != nil && err != services.ErrProfileNotFound {
		h.logger.Error("profile delete failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{"error": "Failed to delete account"})
		return
	}

	if err := h.users.Delete(r.Context(), user.ID); err != nil {
		h.logger.Error("user delete failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{"error": "Failed to delete account"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

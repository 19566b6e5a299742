package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Elzoka/devconnecter/internal/middleware"
	"github.com/Elzoka/devconnecter/internal/models"
	"github.com/Elzoka/devconnecter/internal/services"
)

type PostsHandler struct {
	posts  services.PostService
	logger *zap.Logger
}

func NewPostsHandler(posts services.PostService, logger *zap.Logger) *PostsHandler {
	return &PostsHandler{
		posts:  posts,
		logger: logger,
	}
}

func (h *PostsHandler) Test(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"msg": "posts works"})
}

func (h *PostsHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.GetAll(r.Context())
	if err != nil {
		h.logger.Error("post listing failed", zap.Error(err))
		writeJSON(w, http.StatusNotFound, errorBody{"nopostsfound": "No posts found"})
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

func (h *PostsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.GetByID(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody{"nopostfound": "No post found with that ID"})
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req models.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{"error": "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	post, err := h.posts.Create(r.Context(), user, &req)
	if err != nil {
		h.logger.Error("post create failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{"error": "Failed to create post"})
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	postID := chi.URLParam(r, "postID")

	if err := h.posts.Delete(r.Context(), postID, user.ID); err != nil {
		switch err {
		case services.ErrPostNotFound:
			writeJSON(w, http.StatusNotFound, errorBody{"nopostfound": "No post found"})
		case services.ErrNotPostOwner:
			writeJSON(w, http.StatusUnauthorized, errorBody{"notauthorized": "User not authorized"})
		default:
			h.logger.Error("post delete failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorBody{"error": "Failed to delete post"})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *PostsHandler) Like(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	postID := chi.URLParam(r, "postID")

	post, err := h.posts.Like(r.Context(), postID, user.ID)
	if err != nil {
		switch err {
		case services.ErrPostNotFound:
			writeJSON(w, http.StatusNotFound, errorBody{"nopostfound": "No post found"})
		case services.ErrAlreadyLiked:
			writeJSON(w, http.StatusBadRequest, errorBody{"alreadyliked": "User already liked this post"})
		default:
			h.logger.Error("post like failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorBody{"error": "Failed to like post"})
		}
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *PostsHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	postID := chi.URLParam(r, "postID")

	post, err := h.posts.Unlike(r.Context(), postID, user.ID)
	if err != nil {
		switch err {
		case services.ErrPostNotFound:
			writeJSON(w, http.StatusNotFound, errorBody{"nopostfound": "No post found"})
		case services.ErrNotLiked:
			writeJSON(w, http.StatusBadRequest, errorBody{"notliked": "You have not yet liked this post"})
		default:
			h.logger.Error("post unlike failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorBody{"error": "Failed to unlike post"})
		}
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *PostsHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	postID := chi.URLParam(r, "postID")

	var req models.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{"error": "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	post, err := h.posts.AddComment(r.Context(), postID, user, &req)
	if err != nil {
		if err == services.ErrPostNotFound {
			writeJSON(w, http.StatusNotFound, errorBody{"nopostfound": "No post found"})
			return
		}
		h.logger.Error("comment create failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{"error": "Failed to add comment"})
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *PostsHandler) RemoveComment(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	commentID := chi.URLParam(r, "commentID")

	post, err := h.posts.RemoveComment(r.Context(), postID, commentID)
	if err != nil {
		switch err {
		case services.ErrPostNotFound:
			writeJSON(w, http.StatusNotFound, errorBody{"nopostfound": "No post found"})
		case services.ErrCommentNotFound:
			writeJSON(w, http.StatusNotFound, errorBody{"commentnotexists": "Comment does not exist"})
		default:
			h.logger.Error("comment delete failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorBody{"error": "Failed to delete comment"})
		}
		return
	}

	writeJSON(w, http.StatusOK, post)
}

package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Elzoka/devconnecter/internal/middleware"
	"github.com/Elzoka/devconnecter/internal/services"
	"github.com/Elzoka/devconnecter/internal/token"
)

// testEnv wires the full router against the in-memory stores.
type testEnv struct {
	router   chi.Router
	users    *services.MemoryUserService
	profiles *services.MemoryProfileService
	posts    *services.MemoryPostService
	issuer   *token.Issuer
}

func newTestEnv() *testEnv {
	logger := zap.NewNop()
	users := services.NewMemoryUserService()
	profiles := services.NewMemoryProfileService()
	posts := services.NewMemoryPostService()
	issuer := token.NewIssuer("test-secret", time.Hour)
	auth := middleware.Authenticate(issuer, users)

	usersHandler := NewUsersHandler(users, issuer, logger)
	profileHandler := NewProfileHandler(profiles, users, logger)
	postsHandler := NewPostsHandler(posts, logger)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/test", usersHandler.Test)
			r.Post("/register", usersHandler.Register)
			r.Post("/login", usersHandler.Login)
			r.With(auth).Get("/current", usersHandler.Current)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/test", profileHandler.Test)
			r.Get("/all", profileHandler.GetAll)
			r.Get("/handle/{handle}", profileHandler.GetByHandle)
			r.Get("/user/{userID}", profileHandler.GetByUserID)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Get("/", profileHandler.GetCurrent)
				r.Post("/", profileHandler.Upsert)
				r.Delete("/", profileHandler.DeleteAccount)
				r.Post("/experience", profileHandler.AddExperience)
				r.Post("/education", profileHandler.AddEducation)
				r.Delete("/experience/{expID}", profileHandler.RemoveExperience)
				r.Delete("/education/{eduID}", profileHandler.RemoveEducation)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/test", postsHandler.Test)
			r.Get("/", postsHandler.GetAll)
			r.Get("/{postID}", postsHandler.GetByID)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Post("/", postsHandler.Create)
				r.Delete("/{postID}", postsHandler.Delete)
				r.Post("/{postID}/like", postsHandler.Like)
				r.Post("/{postID}/unlike", postsHandler.Unlike)
				r.Post("/{postID}/comment", postsHandler.AddComment)
				r.Delete("/{postID}/comment/{commentID}", postsHandler.RemoveComment)
			})
		})
	})

	return &testEnv{
		router:   r,
		users:    users,
		profiles: profiles,
		posts:    posts,
		issuer:   issuer,
	}
}

// do performs a request against the router. bearer is the full Authorization
// header value ("Bearer <jwt>") or empty.
func (e *testEnv) do(t *testing.T, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates an account and returns its Authorization header
// value.
func (e *testEnv) registerAndLogin(t *testing.T, name, email, password string) string {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/users/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	return resp.Token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

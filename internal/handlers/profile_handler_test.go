package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elzoka/devconnecter/internal/models"
)

func upsertProfile(t *testing.T, env *testEnv, bearer, handle string) *models.Profile {
	t.Helper()

	w := env.do(t, http.MethodPost, "/api/profile", bearer, map[string]string{
		"handle": handle,
		"status": "Developer",
		"skills": "Go,JavaScript",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var profile models.Profile
	decodeBody(t, w, &profile)
	return &profile
}

func TestProfileUpsertAndGet(t *testing.T) {
	env := newTestEnv()
	bearer := env.registerAndLogin(t, "Alice", "alice@example.com", "secret123")

	// No profile yet.
	w := env.do(t, http.MethodGet, "/api/profile", bearer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	profile := upsertProfile(t, env, bearer, "alice")
	assert.Equal(t, "alice", profile.Handle)
	assert.Equal(t, []string{"Go", "JavaScript"}, profile.Skills)
	require.NotNil(t, profile.User)
	assert.Equal(t, "Alice", profile.User.Name)

	w = env.do(t, http.MethodGet, "/api/profile", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched models.Profile
	decodeBody(t, w, &fetched)
	assert.Equal(t, profile.ID, fetched.ID)
}

func TestProfileValidation(t *testing.T) {
	env := newTestEnv()
	bearer := env.registerAndLogin(t, "Alice", "alice@example.com", "secret123")

	w := env.do(t, http.MethodPost, "/api/profile", bearer, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	decodeBody(t, w, &body)
	assert.Contains(t, body, "handle")
	assert.Contains(t, body, "status")
	assert.Contains(t, body, "skills")
}

func TestProfileHandleConflict(t *testing.T) {
	env := newTestEnv()
	bearerA := env.registerAndLogin(t, "Alice", "alice@example.com", "secret123")
	bearerB := env.registerAndLogin(t, "Bob", "bob@example.com", "secret123")

	upsertProfile(t, env, bearerA, "alice")

	w := env.do(t, http.MethodPost, "/api/profile", bearerB, map[string]string{
		"handle": "alice",
		"status": "Designer",
		"skills": "Figma",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	decodeBody(t, w, &body)
	assert.Equal(t, "That handle already exists", body["handle"])
}

func TestPublicProfileLookups(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodGet, "/api/profile/all", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	bearer := env.registerAndLogin(t, "Alice", "alice@example.com", "secret123")
	profile := upsertProfile(t, env, bearer, "alice")

	w = env.do(t, http.MethodGet, "/api/profile/all", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profiles []models.Profile
	decodeBody(t, w, &profiles)
	require.Len(t, profiles, 1)
	require.NotNil(t, profiles[0].User)
	assert.Equal(t, "Alice", profiles[0].User.Name)

	w = env.do(t, http.MethodGet, "/api/profile/handle/alice", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/profile/user/"+profile.User.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/profile/handle/nobody", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]string
	decodeBody(t, w, &body)
	assert.Equal(t, "There is no profile for this user", body["noprofile"])
}

func TestExperienceEndpoints(t *testing.T) {
	env := newTestEnv()
	bearer := env.registerAndLogin(t, "Alice", "alice@example.com", "secret123")
	upsertProfile(t, env, bearer, "alice")

	// Validation reports every missing field.
	w := env.do(t, http.MethodPost, "/api/profile/experience", bearer, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errs map[string]string
	decodeBody(t, w, &errs)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "company")
	assert.Contains(t, errs, "from")

	w = env.do(t, http.MethodPost, "/api/profile/experience", bearer, map[string]string{
		"title":   "Engineer",
		"company": "Acme",
		"from":    "2019-01-01",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var profile models.Profile
	decodeBody(t, w, &profile)
	require.Len(t, profile.Experience, 1)

	// Removing an unknown id is tolerated.
	w = env.do(t, http.MethodDelete, "/api/profile/experience/no-such-id", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &profile)
	assert.Len(t, profile.Experience, 1)

	w = env.do(t, http.MethodDelete, "/api/profile/experience/"+profile.Experience[0].ID, bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &profile)
	assert.Empty(t, profile.Experience)
}

func TestEducationEndpoints(t *testing.T) {
	env := newTestEnv()
	bearer := env.registerAndLogin(t, "Alice", "alice@example.com", "secret123")
	upsertProfile(t, env, bearer, "alice")

	w := env.do(t, http.MethodPost, "/api/profile/education", bearer, map[string]string{
		"school":       "MIT",
		"degree":       "BSc",
		"fieldofstudy": "CS",
		"from":         "2015-09-01",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var profile models.Profile
	decodeBody(t, w, &profile)
	require.Len(t, profile.Education, 1)

	w = env.do(t, http.MethodDelete, "/api/profile/education/"+profile.Education[0].ID, bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &profile)
	assert.Empty(t, profile.Education)
}

func TestDeleteAccountCascades(t *testing.T) {
	env := newTestEnv()
	bearer := env.registerAndLogin(t, "Alice", "alice@example.com", "secret123")
	upsertProfile(t, env, bearer, "alice")

	w := env.do(t, http.MethodDelete, "/api/profile", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]bool
	decodeBody(t, w, &body)
	assert.True(t, body["success"])

	// Profile and user are both gone.
	w = env.do(t, http.MethodGet, "/api/profile/handle/alice", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The outstanding token no longer resolves to a user.
	w = env.do(t, http.MethodGet, "/api/users/current", bearer, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteAccountWithoutProfile(t *testing.T) {
	env := newTestEnv()
	bearer := env.registerAndLogin(t, "Alice", "alice@example.com", "secret123")

	// No profile submitted yet; the account still deletes cleanly.
	w := env.do(t, http.MethodDelete, "/api/profile", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/users/current", bearer, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

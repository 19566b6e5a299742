package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elzoka/devconnecter/internal/models"
)

func strPtr(s string) *string { return &s }

func baseProfileRequest(handle string) *models.ProfileRequest {
	return &models.ProfileRequest{
		Handle: handle,
		Status: "Developer",
		Skills: "Go,JavaScript",
	}
}

func TestUpsertCreatesOnce(t *testing.T) {
	s := NewMemoryProfileService()
	ctx := context.Background()

	created, err := s.Upsert(ctx, "user-1", baseProfileRequest("alice"))
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Handle)
	assert.Equal(t, []string{"Go", "JavaScript"}, created.Skills)

	// A second submission updates in place, never duplicates.
	req := baseProfileRequest("alice-dev")
	req.Status = "Senior Developer"
	updated, err := s.Upsert(ctx, "user-1", req)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "alice-dev", updated.Handle)
	assert.Equal(t, "Senior Developer", updated.Status)

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpsertHandleTaken(t *testing.T) {
	s := NewMemoryProfileService()
	ctx := context.Background()

	_, err := s.Upsert(ctx, "user-1", baseProfileRequest("alice"))
	require.NoError(t, err)

	_, err = s.Upsert(ctx, "user-2", baseProfileRequest("alice"))
	assert.ErrorIs(t, err, ErrHandleTaken)

	// Resubmitting your own handle is fine.
	_, err = s.Upsert(ctx, "user-1", baseProfileRequest("alice"))
	assert.NoError(t, err)
}

func TestUpsertPatchSemantics(t *testing.T) {
	s := NewMemoryProfileService()
	ctx := context.Background()

	req := baseProfileRequest("alice")
	req.Company = strPtr("Acme")
	req.Twitter = strPtr("https://twitter.com/alice")
	_, err := s.Upsert(ctx, "user-1", req)
	require.NoError(t, err)

	// Omitted fields keep their stored values.
	p, err := s.Upsert(ctx, "user-1", baseProfileRequest("alice"))
	require.NoError(t, err)
	assert.Equal(t, "Acme", p.Company)
	assert.Equal(t, "https://twitter.com/alice", p.Social.Twitter)

	// An explicit empty value clears the field.
	req = baseProfileRequest("alice")
	req.Company = strPtr("")
	p, err = s.Upsert(ctx, "user-1", req)
	require.NoError(t, err)
	assert.Equal(t, "", p.Company)
	assert.Equal(t, "https://twitter.com/alice", p.Social.Twitter)
}

func TestSkillsPreserveOrderAndDuplicates(t *testing.T) {
	s := NewMemoryProfileService()

	req := baseProfileRequest("alice")
	req.Skills = "Go, SQL ,Go,JS"
	p, err := s.Upsert(context.Background(), "user-1", req)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL", "Go", "JS"}, p.Skills)
}

func TestExperienceAddAndRemove(t *testing.T) {
	s := NewMemoryProfileService()
	ctx := context.Background()

	_, err := s.Upsert(ctx, "user-1", baseProfileRequest("alice"))
	require.NoError(t, err)

	p, err := s.AddExperience(ctx, "user-1", &models.ExperienceRequest{
		Title: "Engineer", Company: "Acme", From: "2019-01-01",
	})
	require.NoError(t, err)
	require.Len(t, p.Experience, 1)
	assert.NotEmpty(t, p.Experience[0].ID)

	// New entries are prepended.
	p, err = s.AddExperience(ctx, "user-1", &models.ExperienceRequest{
		Title: "Senior Engineer", Company: "Acme", From: "2021-01-01",
	})
	require.NoError(t, err)
	require.Len(t, p.Experience, 2)
	assert.Equal(t, "Senior Engineer", p.Experience[0].Title)

	p, err = s.RemoveExperience(ctx, "user-1", p.Experience[0].ID)
	require.NoError(t, err)
	require.Len(t, p.Experience, 1)
	assert.Equal(t, "Engineer", p.Experience[0].Title)
}

func TestRemoveExperienceToleratesMissingID(t *testing.T) {
	s := NewMemoryProfileService()
	ctx := context.Background()

	_, err := s.Upsert(ctx, "user-1", baseProfileRequest("alice"))
	require.NoError(t, err)
	_, err = s.AddExperience(ctx, "user-1", &models.ExperienceRequest{
		Title: "Engineer", Company: "Acme", From: "2019-01-01",
	})
	require.NoError(t, err)

	// Unknown id is a no-op, not an error.
	p, err := s.RemoveExperience(ctx, "user-1", "no-such-id")
	require.NoError(t, err)
	assert.Len(t, p.Experience, 1)

	// Missing profile is still an error.
	_, err = s.RemoveExperience(ctx, "user-2", "no-such-id")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestEducationAddAndRemove(t *testing.T) {
	s := NewMemoryProfileService()
	ctx := context.Background()

	_, err := s.Upsert(ctx, "user-1", baseProfileRequest("alice"))
	require.NoError(t, err)

	p, err := s.AddEducation(ctx, "user-1", &models.EducationRequest{
		School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2015-09-01",
	})
	require.NoError(t, err)
	require.Len(t, p.Education, 1)

	p, err = s.RemoveEducation(ctx, "user-1", p.Education[0].ID)
	require.NoError(t, err)
	assert.Empty(t, p.Education)

	p, err = s.RemoveEducation(ctx, "user-1", "no-such-id")
	require.NoError(t, err)
	assert.Empty(t, p.Education)
}

func TestGetByHandle(t *testing.T) {
	s := NewMemoryProfileService()
	ctx := context.Background()

	_, err := s.Upsert(ctx, "user-1", baseProfileRequest("alice"))
	require.NoError(t, err)

	p, err := s.GetByHandle(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "user-1", p.UserID)

	_, err = s.GetByHandle(ctx, "nobody")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestDeleteByUserID(t *testing.T) {
	s := NewMemoryProfileService()
	ctx := context.Background()

	_, err := s.Upsert(ctx, "user-1", baseProfileRequest("alice"))
	require.NoError(t, err)

	require.NoError(t, s.DeleteByUserID(ctx, "user-1"))

	_, err = s.GetByUserID(ctx, "user-1")
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.ErrorIs(t, s.DeleteByUserID(ctx, "user-1"), ErrProfileNotFound)
}

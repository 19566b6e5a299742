package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Elzoka/devconnecter/internal/models"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrHandleTaken     = errors.New("handle already exists")
)

type ProfileService interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	GetByHandle(ctx context.Context, handle string) (*models.Profile, error)
	GetAll(ctx context.Context) ([]*models.Profile, error)
	Upsert(ctx context.Context, userID string, req *models.ProfileRequest) (*models.Profile, error)
	AddExperience(ctx context.Context, userID string, req *models.ExperienceRequest) (*models.Profile, error)
	AddEducation(ctx context.Context, userID string, req *models.EducationRequest) (*models.Profile, error)
	RemoveExperience(ctx context.Context, userID, expID string) (*models.Profile, error)
	RemoveEducation(ctx context.Context, userID, eduID string) (*models.Profile, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

func newExperience(req *models.ExperienceRequest) models.Experience {
	return models.Experience{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}
}

func newEducation(req *models.EducationRequest) models.Education {
	return models.Education{
		ID:           uuid.New().String(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}
}

// MemoryProfileService is the in-memory store used by tests.
type MemoryProfileService struct {
	mu       sync.RWMutex
	profiles map[string]*models.Profile // userID -> profile
}

func NewMemoryProfileService() *MemoryProfileService {
	return &MemoryProfileService{
		profiles: make(map[string]*models.Profile),
	}
}

func cloneProfile(p *models.Profile) *models.Profile {
	out := *p
	out.Skills = append([]string(nil), p.Skills...)
	out.Experience = append([]models.Experience(nil), p.Experience...)
	out.Education = append([]models.Education(nil), p.Education...)
	return &out
}

func (s *MemoryProfileService) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.profiles[userID]
	if !exists {
		return nil, ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (s *MemoryProfileService) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.profiles {
		if p.Handle == handle {
			return cloneProfile(p), nil
		}
	}
	return nil, ErrProfileNotFound
}

func (s *MemoryProfileService) GetAll(ctx context.Context) ([]*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, cloneProfile(p))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *MemoryProfileService) Upsert(ctx context.Context, userID string, req *models.ProfileRequest) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Handle must be unique across all profiles, except the caller's own.
	for owner, p := range s.profiles {
		if p.Handle == req.Handle && owner != userID {
			return nil, ErrHandleTaken
		}
	}

	p, exists := s.profiles[userID]
	if !exists {
		p = &models.Profile{
			ID:         uuid.New().String(),
			UserID:     userID,
			Experience: []models.Experience{},
			Education:  []models.Education{},
			Date:       time.Now(),
		}
		s.profiles[userID] = p
	}

	p.Handle = req.Handle
	p.Status = req.Status
	p.Skills = req.SkillList()
	applyPatch(&p.Company, req.Company)
	applyPatch(&p.Website, req.Website)
	applyPatch(&p.Location, req.Location)
	applyPatch(&p.Bio, req.Bio)
	applyPatch(&p.GithubUsername, req.GithubUsername)
	applyPatch(&p.Social.Youtube, req.Youtube)
	applyPatch(&p.Social.Twitter, req.Twitter)
	applyPatch(&p.Social.Facebook, req.Facebook)
	applyPatch(&p.Social.Linkedin, req.Linkedin)
	applyPatch(&p.Social.Instagram, req.Instagram)

	return cloneProfile(p), nil
}

// applyPatch overwrites dst only when the field was present in the request.
func applyPatch(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func (s *MemoryProfileService) AddExperience(ctx context.Context, userID string, req *models.ExperienceRequest) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.profiles[userID]
	if !exists {
		return nil, ErrProfileNotFound
	}

	p.Experience = append([]models.Experience{newExperience(req)}, p.Experience...)
	return cloneProfile(p), nil
}

func (s *MemoryProfileService) AddEducation(ctx context.Context, userID string, req *models.EducationRequest) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.profiles[userID]
	if !exists {
		return nil, ErrProfileNotFound
	}

	p.Education = append([]models.Education{newEducation(req)}, p.Education...)
	return cloneProfile(p), nil
}

// RemoveExperience drops the entry matching expID. A missing id is not an
// error; the profile is returned unchanged.
func (s *MemoryProfileService) RemoveExperience(ctx context.Context, userID, expID string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.profiles[userID]
	if !exists {
		return nil, ErrProfileNotFound
	}

	kept := p.Experience[:0]
	for _, e := range p.Experience {
		if e.ID != expID {
			kept = append(kept, e)
		}
	}
	p.Experience = kept
	return cloneProfile(p), nil
}

func (s *MemoryProfileService) RemoveEducation(ctx context.Context, userID, eduID string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.profiles[userID]
	if !exists {
		return nil, ErrProfileNotFound
	}

	kept := p.Education[:0]
	for _, e := range p.Education {
		if e.ID != eduID {
			kept = append(kept, e)
		}
	}
	p.Education = kept
	return cloneProfile(p), nil
}

func (s *MemoryProfileService) DeleteByUserID(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.profiles[userID]; !exists {
		return ErrProfileNotFound
	}
	delete(s.profiles, userID)
	return nil
}

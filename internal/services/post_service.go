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
	ErrPostNotFound    = errors.New("post not found")
	ErrNotPostOwner    = errors.New("not the post owner")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrNotLiked        = errors.New("post not yet liked")
	ErrCommentNotFound = errors.New("comment not found")
)

type PostService interface {
	Create(ctx context.Context, user *models.User, req *models.PostRequest) (*models.Post, error)
	GetAll(ctx context.Context) ([]*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Delete(ctx context.Context, postID, userID string) error
	Like(ctx context.Context, postID, userID string) (*models.Post, error)
	Unlike(ctx context.Context, postID, userID string) (*models.Post, error)
	AddComment(ctx context.Context, postID string, user *models.User, req *models.PostRequest) (*models.Post, error)
	RemoveComment(ctx context.Context, postID, commentID string) (*models.Post, error)
}

func newPost(user *models.User, req *models.PostRequest) *models.Post {
	return &models.Post{
		ID:       uuid.New().String(),
		User:     user.ID,
		Text:     req.Text,
		Name:     user.Name,
		Avatar:   user.Avatar,
		Likes:    []models.Like{},
		Comments: []models.Comment{},
		Date:     time.Now(),
	}
}

func newComment(user *models.User, req *models.PostRequest) models.Comment {
	return models.Comment{
		ID:     uuid.New().String(),
		User:   user.ID,
		Text:   req.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
		Date:   time.Now(),
	}
}

func likedBy(post *models.Post, userID string) bool {
	for _, l := range post.Likes {
		if l.User == userID {
			return true
		}
	}
	return false
}

// MemoryPostService is the in-memory store used by tests.
type MemoryPostService struct {
	mu    sync.RWMutex
	posts map[string]*models.Post
}

func NewMemoryPostService() *MemoryPostService {
	return &MemoryPostService{
		posts: make(map[string]*models.Post),
	}
}

func clonePost(p *models.Post) *models.Post {
	out := *p
	out.Likes = append([]models.Like(nil), p.Likes...)
	out.Comments = append([]models.Comment(nil), p.Comments...)
	return &out
}

func (s *MemoryPostService) Create(ctx context.Context, user *models.User, req *models.PostRequest) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := newPost(user, req)
	s.posts[post.ID] = post
	return clonePost(post), nil
}

func (s *MemoryPostService) GetAll(ctx context.Context) ([]*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *MemoryPostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.posts[id]
	if !exists {
		return nil, ErrPostNotFound
	}
	return clonePost(p), nil
}

func (s *MemoryPostService) Delete(ctx context.Context, postID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[postID]
	if !exists {
		return ErrPostNotFound
	}
	if p.User != userID {
		return ErrNotPostOwner
	}

	delete(s.posts, postID)
	return nil
}

func (s *MemoryPostService) Like(ctx context.Context, postID, userID string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[postID]
	if !exists {
		return nil, ErrPostNotFound
	}
	if likedBy(p, userID) {
		return nil, ErrAlreadyLiked
	}

	p.Likes = append([]models.Like{{User: userID}}, p.Likes...)
	return clonePost(p), nil
}

func (s *MemoryPostService) Unlike(ctx context.Context, postID, userID string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[postID]
	if !exists {
		return nil, ErrPostNotFound
	}
	if !likedBy(p, userID) {
		return nil, ErrNotLiked
	}

	kept := make([]models.Like, 0, len(p.Likes)-1)
	for _, l := range p.Likes {
		if l.User != userID {
			kept = append(kept, l)
		}
	}
	p.Likes = kept
	return clonePost(p), nil
}

func (s *MemoryPostService) AddComment(ctx context.Context, postID string, user *models.User, req *models.PostRequest) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[postID]
	if !exists {
		return nil, ErrPostNotFound
	}

	p.Comments = append([]models.Comment{newComment(user, req)}, p.Comments...)
	return clonePost(p), nil
}

// RemoveComment requires the comment to exist, unlike experience/education
// removal which tolerates a missing id.
func (s *MemoryPostService) RemoveComment(ctx context.Context, postID, commentID string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[postID]
	if !exists {
		return nil, ErrPostNotFound
	}

	found := false
	kept := make([]models.Comment, 0, len(p.Comments))
	for _, c := range p.Comments {
		if c.ID == commentID {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return nil, ErrCommentNotFound
	}

	p.Comments = kept
	return clonePost(p), nil
}

package store

import (
	"fmt"
	"time"

	"miniblog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostStore persists blog posts
type PostStore struct {
	db *gorm.DB
}

// NewPostStore creates a new post store
func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

// Create inserts a new post. Empty strings are acceptable for every
// field; no validation happens at this layer.
func (s *PostStore) Create(title, content, thumbnail, creatorID string) (*models.Post, error) {
	post := &models.Post{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   content,
		Thumbnail: thumbnail,
		CreatorID: creatorID,
		CreatedAt: time.Now(),
	}

	if err := s.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// ListAll returns every post, newest first, with each post's creator
// resolved when the user still exists.
func (s *PostStore) ListAll() ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.Preload("Creator").Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// ListByCreator returns the posts authored by the given user in creation order.
func (s *PostStore) ListByCreator(creatorID string) ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.Where("creator_id = ?", creatorID).Order("created_at ASC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts by creator: %w", err)
	}
	return posts, nil
}

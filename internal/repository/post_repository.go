package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"gopherblog/internal/model"
)

type PostRepository struct {
	db *gorm.DB
}

// PostWithAuthor is a post row joined with the owning user's display
// name. AuthorName is nil when the user association is missing.
type PostWithAuthor struct {
	ID          uint
	Title       string
	Description string
	CoverImage  *string
	UserID      *uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
	AuthorName  *string
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("create post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) ListAllWithAuthor() ([]PostWithAuthor, error) {
	var rows []PostWithAuthor
	err := r.db.Table("posts").
		Select("posts.*, users.name AS author_name").
		Joins("LEFT JOIN users ON users.id = posts.user_id").
		Order("posts.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list posts failed: %w", err)
	}
	return rows, nil
}

func (r *PostRepository) ListByUserWithAuthor(userID uint) ([]PostWithAuthor, error) {
	var rows []PostWithAuthor
	err := r.db.Table("posts").
		Select("posts.*, users.name AS author_name").
		Joins("LEFT JOIN users ON users.id = posts.user_id").
		Where("posts.user_id = ?", userID).
		Order("posts.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list posts by user failed: %w", err)
	}
	return rows, nil
}

// GetByIDAndUserID is the ownership-scoped lookup: a post that exists
// but belongs to someone else looks the same as one that never did.
func (r *PostRepository) GetByIDAndUserID(postID, userID uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.Where("id = ? AND user_id = ?", postID, userID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get post failed: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) Update(post *model.Post) error {
	if err := r.db.Save(post).Error; err != nil {
		return fmt.Errorf("update post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) DeleteByID(postID uint) error {
	if err := r.db.Delete(&model.Post{}, postID).Error; err != nil {
		return fmt.Errorf("delete post failed: %w", err)
	}
	return nil
}

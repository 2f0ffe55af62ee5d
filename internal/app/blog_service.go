package app

import (
	"errors"
	"mime/multipart"
	"regexp"
	"strings"
	"time"

	"gopherblog/internal/model"
	"gopherblog/internal/repository"
	"gopherblog/internal/upload"
)

var ErrBlogNotFound = errors.New("blog not found")

const (
	// unknownAuthor labels posts whose user row is gone.
	unknownAuthor = "Unknown"
	// selfAuthor labels the owner in the create response.
	selfAuthor = "You"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

type BlogService struct {
	postRepo *repository.PostRepository
	uploads  *upload.Store
	baseURL  string
}

type BlogAuthor struct {
	Name string `json:"name"`
}

// BlogItem is the listing row shape. Slug is only populated for the
// public listing, never for the owner's own listing.
type BlogItem struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug,omitempty"`
	Description string     `json:"description"`
	CoverImage  *string    `json:"cover_image"`
	User        BlogAuthor `json:"user"`
	CreatedAt   time.Time  `json:"created_at"`
}

type CreateBlogInput struct {
	UserID      uint
	Title       string
	Description string
	Cover       *multipart.FileHeader
}

type UpdateBlogInput struct {
	UserID      uint
	BlogID      uint
	Title       string
	Description string
	Cover       *multipart.FileHeader
}

func NewBlogService(postRepo *repository.PostRepository, uploads *upload.Store, publicBaseURL string) *BlogService {
	return &BlogService{
		postRepo: postRepo,
		uploads:  uploads,
		baseURL:  strings.TrimRight(publicBaseURL, "/"),
	}
}

// Slugify lowercases a title and collapses whitespace runs to single
// hyphens. Punctuation passes through untouched.
func Slugify(title string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(title), "-")
}

func (s *BlogService) ListAll() ([]BlogItem, error) {
	rows, err := s.postRepo.ListAllWithAuthor()
	if err != nil {
		return nil, err
	}

	items := make([]BlogItem, 0, len(rows))
	for _, row := range rows {
		item := s.toItem(row)
		item.Slug = Slugify(row.Title)
		items = append(items, item)
	}
	return items, nil
}

func (s *BlogService) ListByUser(userID uint) ([]BlogItem, error) {
	if userID == 0 {
		return nil, ErrValidation
	}
	rows, err := s.postRepo.ListByUserWithAuthor(userID)
	if err != nil {
		return nil, err
	}

	items := make([]BlogItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, s.toItem(row))
	}
	return items, nil
}

func (s *BlogService) Create(input CreateBlogInput) (*BlogItem, error) {
	if input.Title == "" || input.Description == "" {
		return nil, ErrValidation
	}

	var coverPath *string
	if input.Cover != nil {
		stored, err := s.uploads.SaveCover(input.Cover)
		if err != nil {
			return nil, err
		}
		coverPath = &stored
	}

	userID := input.UserID
	post := &model.Post{
		Title:       input.Title,
		Description: input.Description,
		CoverImage:  coverPath,
		UserID:      &userID,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	return &BlogItem{
		ID:          post.ID,
		Title:       post.Title,
		Description: post.Description,
		CoverImage:  s.coverURL(post.CoverImage),
		User:        BlogAuthor{Name: selfAuthor},
		CreatedAt:   post.CreatedAt,
	}, nil
}

// Update merges the supplied fields over the stored post. The lookup is
// ownership-scoped, so a foreign post reports not-found.
func (s *BlogService) Update(input UpdateBlogInput) error {
	post, err := s.postRepo.GetByIDAndUserID(input.BlogID, input.UserID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrBlogNotFound
	}

	if input.Title != "" {
		post.Title = input.Title
	}
	if input.Description != "" {
		post.Description = input.Description
	}

	var replaced *string
	if input.Cover != nil {
		stored, err := s.uploads.SaveCover(input.Cover)
		if err != nil {
			return err
		}
		replaced = post.CoverImage
		post.CoverImage = &stored
	}

	if err := s.postRepo.Update(post); err != nil {
		return err
	}
	if replaced != nil {
		_ = s.uploads.Remove(*replaced)
	}
	return nil
}

func (s *BlogService) Delete(userID, blogID uint) error {
	post, err := s.postRepo.GetByIDAndUserID(blogID, userID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrBlogNotFound
	}

	if err := s.postRepo.DeleteByID(post.ID); err != nil {
		return err
	}
	if post.CoverImage != nil {
		_ = s.uploads.Remove(*post.CoverImage)
	}
	return nil
}

func (s *BlogService) toItem(row repository.PostWithAuthor) BlogItem {
	name := unknownAuthor
	if row.AuthorName != nil && *row.AuthorName != "" {
		name = *row.AuthorName
	}
	return BlogItem{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		CoverImage:  s.coverURL(row.CoverImage),
		User:        BlogAuthor{Name: name},
		CreatedAt:   row.CreatedAt,
	}
}

func (s *BlogService) coverURL(relPath *string) *string {
	if relPath == nil || *relPath == "" {
		return nil
	}
	full := s.baseURL + "/" + *relPath
	return &full
}

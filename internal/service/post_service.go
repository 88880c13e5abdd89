package service

import (
	"context"
	"errors"
	"strings"

	"yatube/internal/models"
	"yatube/internal/repository"
)

// maxPostLen bounds the post body; the original schema is an unbounded text
// column, this is a sanity cap.
const maxPostLen = 50000

// PostService implements post creation and editing.
type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
	images    *ImageService
}

// CreatePostInput carries a post_create submission.
type CreatePostInput struct {
	AuthorID uint
	Text     string
	GroupID  *uint
	Image    *ImageUpload
}

// UpdatePostInput carries a post_edit submission.
type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Text    string
	GroupID *uint
	Image   *ImageUpload
}

// NewPostService returns a new PostService.
func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	images *ImageService,
) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		images:    images,
	}
}

// CreatePost validates the submission and creates a post owned by the
// submitting identity. A non-empty FieldError slice means nothing was
// persisted and the form should be re-rendered.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, []FieldError, error) {
	fieldErrs, imagePath, err := s.validateSubmission(ctx, in.Text, in.GroupID, in.Image)
	if err != nil {
		return nil, nil, err
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	post := &models.Post{
		Text:     in.Text,
		AuthorID: in.AuthorID,
		GroupID:  in.GroupID,
		Image:    imagePath,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, nil, err
	}

	created, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, nil, err
	}
	return created, nil, nil
}

// UpdatePost mutates an existing post's text/group/image in place. Only the
// owning author may edit; anyone else gets an UNAUTHORIZED error and the post
// stays untouched. Author and creation timestamp never change.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, []FieldError, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, nil, err
	}

	if post.AuthorID != in.UserID {
		return post, nil, models.NewUnauthorizedError("You can only edit your own posts")
	}

	fieldErrs, imagePath, err := s.validateSubmission(ctx, in.Text, in.GroupID, in.Image)
	if err != nil {
		return nil, nil, err
	}
	if len(fieldErrs) > 0 {
		return post, fieldErrs, nil
	}

	post.Text = in.Text
	post.GroupID = in.GroupID
	if imagePath != "" {
		if s.images != nil {
			s.images.Remove(post.Image)
		}
		post.Image = imagePath
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, nil, err
	}

	updated, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, nil, err
	}
	return updated, nil, nil
}

// validateSubmission checks the shared create/edit fields and stores the
// image attachment when one is present. It returns the stored image's
// media-relative path, empty when no image was submitted.
func (s *PostService) validateSubmission(ctx context.Context, text string, groupID *uint, upload *ImageUpload) ([]FieldError, string, error) {
	var fieldErrs []FieldError

	if strings.TrimSpace(text) == "" {
		fieldErrs = append(fieldErrs, FieldError{Field: "text", Message: "Text is required"})
	} else if len(text) > maxPostLen {
		fieldErrs = append(fieldErrs, FieldError{Field: "text", Message: "Text too long"})
	}

	if groupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *groupID); err != nil {
			if models.IsNotFound(err) {
				fieldErrs = append(fieldErrs, FieldError{Field: "group", Message: "Unknown group"})
			} else {
				return nil, "", err
			}
		}
	}

	imagePath := ""
	if upload != nil && s.images != nil {
		path, err := s.images.Store(*upload)
		if err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == "VALIDATION_ERROR" {
				fieldErrs = append(fieldErrs, FieldError{Field: "image", Message: appErr.Message})
			} else {
				return nil, "", err
			}
		} else {
			imagePath = path
		}
	}

	return fieldErrs, imagePath, nil
}

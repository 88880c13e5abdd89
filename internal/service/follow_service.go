package service

import (
	"context"

	"yatube/internal/models"
	"yatube/internal/repository"
)

// FollowService implements the follow/unfollow toggles.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates the edge from user to the named author. Self-follows and
// already-existing edges are no-ops; the unique (user, author) constraint
// plus ON CONFLICT DO NOTHING makes the create safe under concurrent
// duplicates. The resolved target is returned for the redirect.
func (s *FollowService) Follow(ctx context.Context, userID uint, username string) (*models.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if author.ID == userID {
		return author, nil
	}

	exists, err := s.followRepo.Exists(ctx, userID, author.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return author, nil
	}

	follow := &models.Follow{UserID: userID, AuthorID: author.ID}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		return nil, err
	}
	return author, nil
}

// Unfollow deletes the edge from user to the named author if it exists;
// a missing edge is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, userID uint, username string) (*models.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.followRepo.Delete(ctx, userID, author.ID); err != nil {
		return nil, err
	}
	return author, nil
}

// IsFollowing reports whether user holds a follow edge to author. Anonymous
// viewers (userID 0) never follow anyone.
func (s *FollowService) IsFollowing(ctx context.Context, userID, authorID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.followRepo.Exists(ctx, userID, authorID)
}

// FollowingCount returns how many authors the user follows.
func (s *FollowService) FollowingCount(ctx context.Context, userID uint) (int64, error) {
	return s.followRepo.CountByUser(ctx, userID)
}

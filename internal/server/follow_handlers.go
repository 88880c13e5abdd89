package server

import (
	"yatube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowIndex handles GET /follow, the feed of posts by followed authors.
func (s *Server) FollowIndex(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := currentUserID(c)

	total, err := s.postRepo.CountFollowed(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	following, err := s.followService.FollowingCount(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	page := s.paginator.GetPage(c.Query("page"), int(total))
	posts, err := s.postRepo.ListFollowed(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	data := listContext(page, posts)
	data["title"] = "Posts by authors you follow"
	data["following_count"] = following
	return s.renderer.Render(c, fiber.StatusOK, "follow", data)
}

// ProfileFollow handles POST /profile/:username/follow. Following yourself
// or an author you already follow is a no-op; either way the caller lands
// back on the profile.
func (s *Server) ProfileFollow(c *fiber.Ctx) error {
	ctx := c.UserContext()

	author, err := s.followService.Follow(ctx, currentUserID(c), c.Params("username"))
	if err != nil {
		if models.IsNotFound(err) {
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Redirect(profilePath(author.Username), fiber.StatusFound)
}

// ProfileUnfollow handles POST /profile/:username/unfollow. Unfollowing an
// author you never followed is a no-op.
func (s *Server) ProfileUnfollow(c *fiber.Ctx) error {
	ctx := c.UserContext()

	author, err := s.followService.Unfollow(ctx, currentUserID(c), c.Params("username"))
	if err != nil {
		if models.IsNotFound(err) {
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Redirect(profilePath(author.Username), fiber.StatusFound)
}

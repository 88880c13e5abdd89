package server

import (
	"yatube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Profile handles GET /profile/:username. The following flag is false for
// anonymous viewers and for the author looking at their own page.
func (s *Server) Profile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	author, err := s.userRepo.GetByUsername(ctx, c.Params("username"))
	if err != nil {
		if models.IsNotFound(err) {
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	total, err := s.postRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	following, err := s.followService.IsFollowing(ctx, viewerID(c), author.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	page := s.paginator.GetPage(c.Query("page"), int(total))
	posts, err := s.postRepo.ListByAuthor(ctx, author.ID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	data := listContext(page, posts)
	data["author"] = author
	data["post_amount"] = total
	data["following"] = following
	return s.renderer.Render(c, fiber.StatusOK, "profile", data)
}

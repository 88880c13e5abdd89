package server

import (
	"errors"

	"yatube/internal/models"
	"yatube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles GET and POST /posts/:id/comment. An empty or absent
// submission creates nothing; either way the caller lands back on the post
// detail page.
func (s *Server) AddComment(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var form service.CommentForm
	if err := c.BodyParser(&form); err != nil {
		// An absent or unparseable body counts as an empty submission.
		form.Text = ""
	}

	_, err = s.commentService.AddComment(ctx, service.AddCommentInput{
		UserID: currentUserID(c),
		PostID: postID,
		Text:   form.Text,
	})
	if err != nil {
		if models.IsNotFound(err) {
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		}
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
	}

	return c.Redirect(postPath(postID), fiber.StatusFound)
}

package server

import (
	"errors"

	"yatube/internal/models"
	"yatube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// titlePreviewRunes is how much of the post text becomes the detail title.
const titlePreviewRunes = 30

// Index handles GET /. The whole response is cached by the CachePage guard
// in front of it, so within the TTL window this handler does not run at all.
func (s *Server) Index(c *fiber.Ctx) error {
	ctx := c.UserContext()

	total, err := s.postRepo.CountAll(ctx)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	page := s.paginator.GetPage(c.Query("page"), int(total))
	posts, err := s.postRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	data := listContext(page, posts)
	data["title"] = "Latest updates on the site"
	return s.renderer.Render(c, fiber.StatusOK, "index", data)
}

// GroupPosts handles GET /group/:slug
func (s *Server) GroupPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()

	group, err := s.groupRepo.GetBySlug(ctx, c.Params("slug"))
	if err != nil {
		if models.IsNotFound(err) {
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	total, err := s.postRepo.CountByGroup(ctx, group.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	page := s.paginator.GetPage(c.Query("page"), int(total))
	posts, err := s.postRepo.ListByGroup(ctx, group.ID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	data := listContext(page, posts)
	data["group"] = group
	return s.renderer.Render(c, fiber.StatusOK, "group_list", data)
}

// PostDetail handles GET /posts/:id
func (s *Server) PostDetail(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if models.IsNotFound(err) {
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	postAmount, err := s.postRepo.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	comments, err := s.commentService.ListComments(ctx, post.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return s.renderer.Render(c, fiber.StatusOK, "post_detail", fiber.Map{
		"title":       post.Preview(titlePreviewRunes),
		"post":        post,
		"post_amount": postAmount,
		"comments":    comments,
		"form":        commentForm{},
	})
}

// PostCreateForm handles GET /create. The group choices are included so the
// form can offer them.
func (s *Server) PostCreateForm(c *fiber.Ctx) error {
	groups, err := s.groupRepo.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return s.renderer.Render(c, fiber.StatusOK, "post_form", fiber.Map{
		"form":    postForm{},
		"groups":  groups,
		"is_edit": false,
	})
}

// PostCreate handles POST /create. A valid submission lands on the author's
// profile; an invalid one re-renders the form with field errors and changes
// nothing.
func (s *Server) PostCreate(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := currentUserID(c)

	var form service.PostForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	image, err := formImage(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	_, fieldErrs, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		AuthorID: userID,
		Text:     form.Text,
		GroupID:  form.GroupID,
		Image:    image,
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if len(fieldErrs) > 0 {
		return s.renderer.Render(c, fiber.StatusOK, "post_form", fiber.Map{
			"form":    postForm{Text: form.Text, GroupID: form.GroupID, Errors: fieldErrs},
			"is_edit": false,
		})
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.Redirect(profilePath(user.Username), fiber.StatusFound)
}

// PostEditForm handles GET /posts/:id/edit. Non-owners are bounced to the
// detail page without any error surfaced.
func (s *Server) PostEditForm(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if models.IsNotFound(err) {
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if post.AuthorID != currentUserID(c) {
		return c.Redirect(postPath(post.ID), fiber.StatusFound)
	}

	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return s.renderer.Render(c, fiber.StatusOK, "post_form", fiber.Map{
		"form":    postForm{Text: post.Text, GroupID: post.GroupID},
		"groups":  groups,
		"is_edit": true,
		"post":    post,
	})
}

// PostEdit handles POST /posts/:id/edit
func (s *Server) PostEdit(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := currentUserID(c)

	postID, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var form service.PostForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	image, err := formImage(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	post, fieldErrs, err := s.postService.UpdatePost(ctx, service.UpdatePostInput{
		UserID:  userID,
		PostID:  postID,
		Text:    form.Text,
		GroupID: form.GroupID,
		Image:   image,
	})
	if err != nil {
		if models.IsNotFound(err) {
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		}
		// Someone else's post: no error surfaced, no mutation, just the
		// same redirect a successful edit would produce.
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "UNAUTHORIZED" {
			return c.Redirect(postPath(postID), fiber.StatusFound)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if len(fieldErrs) > 0 {
		return s.renderer.Render(c, fiber.StatusOK, "post_form", fiber.Map{
			"form":    postForm{Text: form.Text, GroupID: form.GroupID, Errors: fieldErrs},
			"is_edit": true,
			"post":    post,
		})
	}

	return c.Redirect(postPath(post.ID), fiber.StatusFound)
}

package server

import (
	"yatube/internal/models"
	"yatube/internal/pagination"
	"yatube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Renderer turns a view name plus its context into a response body. The
// handlers assemble template-style contexts (page_obj, author, form, ...)
// and stay agnostic of the output format.
type Renderer interface {
	Render(c *fiber.Ctx, status int, view string, data fiber.Map) error
}

// JSONRenderer is the default Renderer. It emits the context as a JSON
// object with the view name included.
type JSONRenderer struct{}

// Render writes the context as JSON with the given status.
func (JSONRenderer) Render(c *fiber.Ctx, status int, view string, data fiber.Map) error {
	body := fiber.Map{"view": view}
	for k, v := range data {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// postForm is the echo of a submitted (or prefilled) post form, together
// with any field errors, used when a view re-renders the form.
type postForm struct {
	Text    string               `json:"text"`
	GroupID *uint                `json:"group,omitempty"`
	Errors  []service.FieldError `json:"errors,omitempty"`
}

// commentForm is the empty comment form handed to the detail view.
type commentForm struct {
	Text   string               `json:"text"`
	Errors []service.FieldError `json:"errors,omitempty"`
}

// listContext builds the shared context of every paginated listing view.
func listContext(page pagination.Page, posts []*models.Post) fiber.Map {
	return fiber.Map{
		"page_obj": page,
		"posts":    posts,
	}
}

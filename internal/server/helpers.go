package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"yatube/internal/models"
	"yatube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts the :id route parameter as a positive uint.
// A malformed value reads as a missing resource, not a bad request, so the
// response is a 404. On failure it writes the response and returns
// errResponseWritten; callers should check: if err != nil { return nil }.
func (s *Server) parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", c.Params("id")))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// currentUserID returns the authenticated identity. Only valid behind
// AuthRequired, which guarantees the local is set.
func currentUserID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}

// viewerID returns the identity when present and zero for anonymous callers.
func viewerID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}

// formImage converts the optional multipart "image" field into an upload for
// the image service. A request without the field yields (nil, nil).
func formImage(c *fiber.Ctx) (*service.ImageUpload, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		// fasthttp reports a missing field as an error; treat every
		// failure here as "no image attached".
		return nil, nil
	}
	return readImage(fh)
}

func readImage(fh *multipart.FileHeader) (*service.ImageUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return &service.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}

// profilePath builds the canonical profile URL for redirects.
func profilePath(username string) string {
	return "/profile/" + username
}

// postPath builds the canonical post detail URL for redirects.
func postPath(id uint) string {
	return fmt.Sprintf("/posts/%d", id)
}

package server

import (
	"context"
	"net/http/httptest"
	"testing"

	"yatube/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_Anonymous(t *testing.T) {
	_, app, deps := newTestServer(t)

	deps.users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		return &models.User{ID: 10, Username: username}, nil
	}
	deps.posts.countByAuthorFn = func(_ context.Context, authorID uint) (int64, error) {
		return 4, nil
	}
	deps.posts.listByAuthorFn = func(_ context.Context, authorID uint, _, _ int) ([]*models.Post, error) {
		return somePosts(4, authorID), nil
	}
	existsCalled := false
	deps.follows.existsFn = func(_ context.Context, _, _ uint) (bool, error) {
		existsCalled = true
		return true, nil
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/profile/mia", nil))
	require.NoError(t, err)

	data := decodeBody(t, resp)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "profile", data["view"])
	assert.Equal(t, float64(4), data["post_amount"])
	assert.Equal(t, false, data["following"])
	assert.False(t, existsCalled, "anonymous viewers never hit the follow lookup")

	author := data["author"].(map[string]any)
	assert.Equal(t, "mia", author["username"])
}

func TestProfile_AuthenticatedViewerSeesFollowingFlag(t *testing.T) {
	srv, app, deps := newTestServer(t)

	deps.users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		return &models.User{ID: 10, Username: username}, nil
	}
	deps.follows.existsFn = func(_ context.Context, userID, authorID uint) (bool, error) {
		assert.Equal(t, uint(1), userID)
		assert.Equal(t, uint(10), authorID)
		return true, nil
	}

	resp, err := app.Test(authedRequest(t, srv, "GET", "/profile/mia", nil))
	require.NoError(t, err)

	data := decodeBody(t, resp)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, data["following"])
}

func TestProfile_UnknownUsername(t *testing.T) {
	_, app, deps := newTestServer(t)

	deps.users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		return nil, models.NewNotFoundError("User", username)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/profile/ghost", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

package folio

import (
	"context"
	"net/http"

	"github.com/devnarayan/folio/internal/models"
)

// UpdateProfile applies a partial profile update and returns the updated user.
func (c *Client) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/users/profile", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword rotates the account password. The active session's tokens
// are not affected on success.
func (c *Client) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	return c.do(ctx, http.MethodPost, "/users/change-password", nil, req, nil)
}

// UserStats fetches the aggregate account view.
func (c *Client) UserStats(ctx context.Context) (*models.UserStats, error) {
	var stats models.UserStats
	if err := c.do(ctx, http.MethodGet, "/users/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

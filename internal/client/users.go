package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"activity-hub/internal/api"
	"activity-hub/internal/models"
)

// Login stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.Do(ctx, "POST", "/auth/login", &api.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// Register stores the returned token on the client.
func (c *Client) Register(ctx context.Context, email, password, username string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	req := &api.RegisterUserRequest{Email: email, Password: password, Username: username}
	if err := c.Do(ctx, "POST", "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

func (c *Client) Logout(ctx context.Context) error {
	err := c.Do(ctx, "POST", "/auth/logout", struct{}{}, nil)
	c.SetToken("")
	return err
}

func (c *Client) CurrentUser(ctx context.Context) (*models.PublicUser, error) {
	var user models.PublicUser
	if err := c.Do(ctx, "GET", "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*models.PublicUser, error) {
	var user models.PublicUser
	if err := c.Do(ctx, "GET", fmt.Sprintf("/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*models.PublicUser, error) {
	var user models.PublicUser
	if err := c.Do(ctx, "PUT", "/users/me", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	return c.Do(ctx, "PUT", "/users/me/password", &api.ChangePasswordRequest{CurrentPassword: current, NewPassword: next}, nil)
}

func (c *Client) ListUsers(ctx context.Context, search string, limit, offset int) (*models.UserPage, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	var page models.UserPage
	if err := c.Do(ctx, "GET", withQuery("/users", q), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) Follow(ctx context.Context, userID int64) error {
	return c.Do(ctx, "POST", fmt.Sprintf("/users/%d/follow", userID), struct{}{}, nil)
}

func (c *Client) Unfollow(ctx context.Context, userID int64) error {
	return c.Do(ctx, "DELETE", fmt.Sprintf("/users/%d/follow", userID), nil, nil)
}

func (c *Client) FavoriteSubcategories(ctx context.Context) ([]*models.Subcategory, error) {
	var subcategories []*models.Subcategory
	if err := c.Do(ctx, "GET", "/users/me/favorites/subcategories", nil, &subcategories); err != nil {
		return nil, err
	}
	return subcategories, nil
}

func (c *Client) AddFavorite(ctx context.Context, subcategoryID int64) error {
	return c.Do(ctx, "POST", fmt.Sprintf("/users/me/favorites/subcategories/%d", subcategoryID), struct{}{}, nil)
}

func (c *Client) RemoveFavorite(ctx context.Context, subcategoryID int64) error {
	return c.Do(ctx, "DELETE", fmt.Sprintf("/users/me/favorites/subcategories/%d", subcategoryID), nil, nil)
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"activity-hub/internal/api"
	"activity-hub/internal/models"
)

// PostQuery mirrors the filters of GET /posts. Zero values are omitted.
type PostQuery struct {
	SubcategoryID int64
	UserID        int64
	Tag           string
	Search        string
	SortBy        string
	DateFrom      time.Time
	DateTo        time.Time
	Limit         int
	Offset        int
}

func (q PostQuery) values() url.Values {
	v := url.Values{}
	if q.SubcategoryID != 0 {
		v.Set("subcategoryId", strconv.FormatInt(q.SubcategoryID, 10))
	}
	if q.UserID != 0 {
		v.Set("userId", strconv.FormatInt(q.UserID, 10))
	}
	if q.Tag != "" {
		v.Set("tag", q.Tag)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if !q.DateFrom.IsZero() {
		v.Set("dateFrom", q.DateFrom.Format(time.RFC3339))
	}
	if !q.DateTo.IsZero() {
		v.Set("dateTo", q.DateTo.Format(time.RFC3339))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	return v
}

func (c *Client) ListPosts(ctx context.Context, q PostQuery) (*models.PostPage, error) {
	var page models.PostPage
	if err := c.Do(ctx, "GET", withQuery("/posts", q.values()), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetPost(ctx context.Context, id int64) (*models.PostDetails, error) {
	var details models.PostDetails
	if err := c.Do(ctx, "GET", fmt.Sprintf("/posts/%d", id), nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (c *Client) CreatePost(ctx context.Context, req *api.CreatePostRequest) (*models.Post, error) {
	var post models.Post
	if err := c.Do(ctx, "POST", "/posts", req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) UpdatePost(ctx context.Context, id int64, req *api.UpdatePostRequest) (*models.Post, error) {
	var post models.Post
	if err := c.Do(ctx, "PUT", fmt.Sprintf("/posts/%d", id), req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.Do(ctx, "DELETE", fmt.Sprintf("/posts/%d", id), nil, nil)
}

func (c *Client) Like(ctx context.Context, postID int64) (*models.LikeState, error) {
	return c.likeState(ctx, "POST", postID)
}

func (c *Client) Unlike(ctx context.Context, postID int64) (*models.LikeState, error) {
	return c.likeState(ctx, "DELETE", postID)
}

func (c *Client) likeState(ctx context.Context, method string, postID int64) (*models.LikeState, error) {
	var state models.LikeState
	if err := c.Do(ctx, method, fmt.Sprintf("/posts/%d/like", postID), nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *Client) Bookmarks(ctx context.Context) (*models.PostPage, error) {
	var page models.PostPage
	if err := c.Do(ctx, "GET", "/users/me/bookmarks", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) Bookmark(ctx context.Context, postID int64) (*models.BookmarkState, error) {
	return c.bookmarkState(ctx, "POST", postID)
}

func (c *Client) Unbookmark(ctx context.Context, postID int64) (*models.BookmarkState, error) {
	return c.bookmarkState(ctx, "DELETE", postID)
}

func (c *Client) bookmarkState(ctx context.Context, method string, postID int64) (*models.BookmarkState, error) {
	var state models.BookmarkState
	if err := c.Do(ctx, method, fmt.Sprintf("/users/me/bookmarks/%d", postID), nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Search queries posts, users and subcategories at once. subcategoryID 0
// searches everywhere.
func (c *Client) Search(ctx context.Context, text string, subcategoryID int64, tag string, limit int) (*models.SearchResults, error) {
	q := url.Values{}
	q.Set("q", text)
	if subcategoryID != 0 {
		q.Set("categoryId", strconv.FormatInt(subcategoryID, 10))
	}
	if tag != "" {
		q.Set("tag", tag)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var results models.SearchResults
	if err := c.Do(ctx, "GET", withQuery("/search", q), nil, &results); err != nil {
		return nil, err
	}
	return &results, nil
}

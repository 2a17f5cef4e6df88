package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"activity-hub/internal/api"
	"activity-hub/internal/models"
)

func (c *Client) MainCategories(ctx context.Context) ([]models.MainCategory, error) {
	var categories []models.MainCategory
	if err := c.Do(ctx, "GET", "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CategoryTree(ctx context.Context) ([]models.CategoryTreeNode, error) {
	var tree []models.CategoryTreeNode
	if err := c.Do(ctx, "GET", "/categories/tree", nil, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// Subcategories lists approved subcategories, or every one when showAll is
// set. mainCategoryID 0 means all main categories.
func (c *Client) Subcategories(ctx context.Context, mainCategoryID int64, showAll bool) ([]*models.Subcategory, error) {
	q := url.Values{}
	if mainCategoryID != 0 {
		q.Set("mainCategoryId", strconv.FormatInt(mainCategoryID, 10))
	}
	if showAll {
		q.Set("showAll", "true")
	}
	var subcategories []*models.Subcategory
	if err := c.Do(ctx, "GET", withQuery("/subcategories", q), nil, &subcategories); err != nil {
		return nil, err
	}
	return subcategories, nil
}

func (c *Client) CreateSubcategory(ctx context.Context, req *api.CreateSubcategoryRequest) (*models.Subcategory, error) {
	var sc models.Subcategory
	if err := c.Do(ctx, "POST", "/subcategories", req, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (c *Client) ApproveSubcategory(ctx context.Context, id int64) (*models.Subcategory, error) {
	var sc models.Subcategory
	if err := c.Do(ctx, "PATCH", fmt.Sprintf("/subcategories/%d/approve", id), struct{}{}, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (c *Client) Tags(ctx context.Context, subcategoryID int64, limit int) ([]models.TagCount, error) {
	q := url.Values{}
	if subcategoryID != 0 {
		q.Set("subcategoryId", strconv.FormatInt(subcategoryID, 10))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var tags []models.TagCount
	if err := c.Do(ctx, "GET", withQuery("/tags", q), nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

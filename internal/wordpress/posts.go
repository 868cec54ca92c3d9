package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Post is the posts endpoint payload for a publish run. Categories and Tags
// are always sent, empty when nothing resolved; FeaturedMedia is omitted
// when no media was uploaded.
type Post struct {
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Content       string `json:"content"`
	Status        string `json:"status"`
	Categories    []int  `json:"categories"`
	Tags          []int  `json:"tags"`
	FeaturedMedia int    `json:"featured_media,omitempty"`
}

// PostExists reports whether a post with the slug is already on the site.
func (c *Client) PostExists(ctx context.Context, slug string) (bool, error) {
	query := url.Values{"slug": {slug}}

	req, err := c.newRequest(ctx, http.MethodGet, c.postsPath+"?"+query.Encode(), nil)
	if err != nil {
		return false, err
	}

	resp, err := c.queryClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, newAPIError(resp, c.postsPath)
	}

	var posts []struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}

	return len(posts) > 0, nil
}

// CreatePost publishes the post and returns its public URL.
func (c *Client) CreatePost(ctx context.Context, post Post) (string, error) {
	if post.Categories == nil {
		post.Categories = []int{}
	}
	if post.Tags == nil {
		post.Tags = []int{}
	}

	payload, err := json.Marshal(post)
	if err != nil {
		return "", fmt.Errorf("failed to encode post: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.postsPath, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.publishClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", newAPIError(resp, c.postsPath)
	}

	var created struct {
		Link string `json:"link"`
		GUID struct {
			Rendered string `json:"rendered"`
		} `json:"guid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if created.Link != "" {
		return created.Link, nil
	}

	return created.GUID.Rendered, nil
}

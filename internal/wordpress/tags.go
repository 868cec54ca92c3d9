package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// ResolveTag returns the id for a tag name, creating the tag when the search
// finds nothing.
func (c *Client) ResolveTag(ctx context.Context, name string) (int, error) {
	id, err := c.searchTag(ctx, name)
	if err != nil {
		if c.logger != nil {
			c.logger.Debug().Err(err).Str("tag", name).Msg("tag search failed, attempting create")
		}
	} else if id != 0 {
		return id, nil
	}

	return c.createTag(ctx, name)
}

// searchTag returns the first matching tag id, or zero when there is no
// match.
func (c *Client) searchTag(ctx context.Context, name string) (int, error) {
	query := url.Values{"search": {name}}

	req, err := c.newRequest(ctx, http.MethodGet, c.tagsPath+"?"+query.Encode(), nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.queryClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, newAPIError(resp, c.tagsPath)
	}

	var tags []struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(tags) == 0 {
		return 0, nil
	}

	return tags[0].ID, nil
}

func (c *Client) createTag(ctx context.Context, name string) (int, error) {
	payload, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return 0, fmt.Errorf("failed to encode tag: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.tagsPath, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.queryClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return 0, newAPIError(resp, c.tagsPath)
	}

	var tag struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tag); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	return tag.ID, nil
}

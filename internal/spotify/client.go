// Package spotify wraps the parts of the Spotify Web API used to learn a
// listener's taste.
package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
)

// Client wraps the Spotify API client with convenience methods.
type Client struct {
	api *spotify.Client
}

// New creates a new Spotify client wrapper.
// The underlying client should already be authenticated.
func New(api *spotify.Client) *Client {
	return &Client{api: api}
}

// CurrentProfile returns the authenticated listener.
func (c *Client) CurrentProfile(ctx context.Context) (Profile, error) {
	user, err := c.api.CurrentUser(ctx)
	if err != nil {
		return Profile{}, fmt.Errorf("getting current user: %w", err)
	}
	name := user.DisplayName
	if name == "" {
		name = user.ID
	}
	return Profile{ID: user.ID, DisplayName: name}, nil
}

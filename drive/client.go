package drive

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Credentials identify the OAuth client and the long-lived refresh token
// the backup runs under
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// Client wraps the Google Drive API client and handles authentication
type Client struct {
	service     *drive.Service
	tokenSource oauth2.TokenSource
}

// NewClient creates a new Drive client that refreshes its access token as needed
func NewClient(ctx context.Context, creds Credentials) (*Client, error) {
	oauthConfig := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Scopes:       []string{drive.DriveFileScope},
		Endpoint:     google.Endpoint,
	}

	// Create a token source that will automatically refresh the token
	tokenSource := oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken})
	httpClient := oauth2.NewClient(ctx, tokenSource)

	srv, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, err
	}

	return &Client{
		service:     srv,
		tokenSource: tokenSource,
	}, nil
}

// GetCurrentToken returns the current (possibly refreshed) OAuth token
func (c *Client) GetCurrentToken() (*oauth2.Token, error) {
	return c.tokenSource.Token()
}

// Service returns the underlying Google Drive service for direct API access
func (c *Client) Service() *drive.Service {
	return c.service
}

// Package meta is a client for the Meta Marketing API insights surface.
// It lists campaigns, ad sets and ads for an ad account and pulls daily
// insight rows, converting them into the same canonical row shape the
// spreadsheet path produces.
package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "adpulse/internal/errors"
)

// Client talks to one ad account with one access token.
type Client struct {
	baseURL     string
	apiVersion  string
	accessToken string
	accountID   string
	httpClient  *http.Client
}

// Config carries the connection parameters for a Client.
type Config struct {
	BaseURL     string
	APIVersion  string
	AccessToken string
	AdAccountID string
	Timeout     time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return nil, apperrors.InvalidInput("missing access token")
	}
	if strings.TrimSpace(cfg.AdAccountID) == "" {
		return nil, apperrors.InvalidInput("missing ad account id")
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = "https://graph.facebook.com"
	}
	apiVersion := strings.TrimSpace(cfg.APIVersion)
	if apiVersion == "" {
		apiVersion = "v19.0"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// act_ prefix is how the Graph addresses ad accounts.
	accountID := cfg.AdAccountID
	if !strings.HasPrefix(accountID, "act_") {
		accountID = "act_" + accountID
	}

	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiVersion:  apiVersion,
		accessToken: cfg.AccessToken,
		accountID:   accountID,
		httpClient:  &http.Client{Timeout: timeout},
	}, nil
}

// AccountID returns the act_-prefixed account this client is bound to.
func (c *Client) AccountID() string {
	return c.accountID
}

// endpoint builds a full URL for path under the account node.
func (c *Client) endpoint(path string, params url.Values) string {
	params.Set("access_token", c.accessToken)
	return fmt.Sprintf("%s/%s/%s?%s", c.baseURL, c.apiVersion, path, params.Encode())
}

// get fetches one URL and decodes the JSON body into out. Graph errors
// come back with a non-2xx status and an error envelope.
func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeExternalService, "meta api request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeExternalService, "read meta api response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope apiError
		if json.Unmarshal(body, &envelope) == nil && envelope.Error.Message != "" {
			return apperrors.New(apperrors.CodeExternalService,
				fmt.Sprintf("meta api error (code %d): %s", envelope.Error.Code, envelope.Error.Message))
		}
		return apperrors.New(apperrors.CodeExternalService,
			fmt.Sprintf("meta api http %d: %s", resp.StatusCode, string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.Wrap(err, apperrors.CodeExternalService, "unmarshal meta api response")
	}
	return nil
}

// listEntities walks all pages of one listing endpoint.
func (c *Client) listEntities(ctx context.Context, edge string) ([]Entity, error) {
	params := url.Values{}
	params.Set("fields", "id,name,status")
	params.Set("limit", "100")
	next := c.endpoint(c.accountID+"/"+edge, params)

	var all []Entity
	for next != "" {
		var page entityPage
		if err := c.get(ctx, next, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Data...)
		next = page.Paging.Next
	}
	return all, nil
}

// ListCampaigns returns every campaign in the account.
func (c *Client) ListCampaigns(ctx context.Context) ([]Entity, error) {
	return c.listEntities(ctx, "campaigns")
}

// ListAdSets returns every ad set in the account.
func (c *Client) ListAdSets(ctx context.Context) ([]Entity, error) {
	return c.listEntities(ctx, "adsets")
}

// ListAds returns every ad in the account.
func (c *Client) ListAds(ctx context.Context) ([]Entity, error) {
	return c.listEntities(ctx, "ads")
}

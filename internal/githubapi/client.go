// Package githubapi is the thin glue that posts the rendered impact
// comment to a pull request. The engine only produces the body string;
// everything here is transport.
package githubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	svcerrors "serviceowners/internal/errors"
)

// DefaultBaseURL is the public GitHub REST endpoint.
const DefaultBaseURL = "https://api.github.com"

const maxCommentPages = 10

// Client talks to the GitHub issues API with a bearer token.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient creates a client for the public API.
func NewClient(token string) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 20 * time.Second},
	}
}

type comment struct {
	ID   int64  `json:"id"`
	Body string `json:"body"`
}

func (c *Client) request(ctx context.Context, method, url string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, svcerrors.Wrap(svcerrors.GitHubError, "cannot encode request body", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, svcerrors.Wrap(svcerrors.GitHubError, "cannot build request", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("User-Agent", "serviceowners")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, svcerrors.Wrap(svcerrors.GitHubError,
			fmt.Sprintf("GitHub API %s %s failed", method, url), err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, svcerrors.Wrap(svcerrors.GitHubError, "cannot read response body", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := strings.TrimSpace(string(data))
		if len(detail) > 500 {
			detail = detail[:500]
		}
		return nil, svcerrors.New(svcerrors.GitHubError,
			fmt.Sprintf("GitHub API %s %s failed: %s: %s", method, url, resp.Status, detail))
	}
	return data, nil
}

func (c *Client) commentsURL(owner, repo string, prNumber int) string {
	return fmt.Sprintf("%s/repos/%s/%s/issues/%d/comments", c.BaseURL, owner, repo, prNumber)
}

func (c *Client) commentURL(owner, repo string, commentID int64) string {
	return fmt.Sprintf("%s/repos/%s/%s/issues/comments/%d", c.BaseURL, owner, repo, commentID)
}

// FindCommentID pages through the PR's issue comments looking for the
// marker. Returns 0 when no comment carries it.
func (c *Client) FindCommentID(ctx context.Context, owner, repo string, prNumber int, marker string) (int64, error) {
	for page := 1; page <= maxCommentPages; page++ {
		url := fmt.Sprintf("%s?per_page=100&page=%d", c.commentsURL(owner, repo, prNumber), page)
		data, err := c.request(ctx, http.MethodGet, url, nil)
		if err != nil {
			return 0, err
		}

		var comments []comment
		if err := json.Unmarshal(data, &comments); err != nil {
			return 0, svcerrors.Wrap(svcerrors.GitHubError, "cannot decode comments", err)
		}

		for _, cm := range comments {
			if strings.Contains(cm.Body, marker) {
				return cm.ID, nil
			}
		}
		if len(comments) < 100 {
			break
		}
	}
	return 0, nil
}

// UpsertComment creates the marker comment on first run and patches it in
// place on later runs, so a PR carries exactly one impact comment.
func (c *Client) UpsertComment(ctx context.Context, owner, repo string, prNumber int, body, marker string) error {
	id, err := c.FindCommentID(ctx, owner, repo, prNumber, marker)
	if err != nil {
		return err
	}

	payload := map[string]string{"body": body}
	if id == 0 {
		_, err = c.request(ctx, http.MethodPost, c.commentsURL(owner, repo, prNumber), payload)
	} else {
		_, err = c.request(ctx, http.MethodPatch, c.commentURL(owner, repo, id), payload)
	}
	return err
}

package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/ghpush/internal/domain/entities"
	"github.com/rios0rios0/ghpush/internal/domain/repositories"
)

const requestTimeout = 30 * time.Second

// contentRequest is the JSON body of a contents PUT.
type contentRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

// contentMetadata is the part of a contents GET response we need.
type contentMetadata struct {
	SHA string `json:"sha"`
}

// ContentsRepository implements repositories.ContentRepository on the
// GitHub REST Contents API.
type ContentsRepository struct {
	client *gh.Client
}

// NewContentsRepository creates a GitHub contents client authenticated with a
// bearer token. An empty apiURL targets api.github.com; otherwise it must be
// the REST root (for GitHub Enterprise, https://host/api/v3).
func NewContentsRepository(token, apiURL string) (repositories.ContentRepository, error) {
	httpClient := &http.Client{Timeout: requestTimeout}
	client := gh.NewClient(httpClient).WithAuthToken(token)

	if apiURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(apiURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid API URL %q: %w", apiURL, err)
		}
		client.BaseURL = baseURL
	}

	return &ContentsRepository{client: client}, nil
}

// PutFile issues PUT /repos/{owner}/{repo}/contents/{path}.
func (p *ContentsRepository) PutFile(
	ctx context.Context,
	target entities.Target,
	file entities.RemoteFile,
) (int, error) {
	body := &contentRequest{
		Message: file.Message,
		Content: file.Content,
		Branch:  file.Branch,
		SHA:     file.SHA,
	}

	req, err := p.client.NewRequest(http.MethodPut, contentsPath(target, file.Path), body)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := p.client.Do(ctx, req, nil)
	return statusOf(resp, err)
}

// GetFileSHA issues GET /repos/{owner}/{repo}/contents/{path} on the target
// branch and returns the blob SHA of the file.
func (p *ContentsRepository) GetFileSHA(
	ctx context.Context,
	target entities.Target,
	path string,
) (string, int, error) {
	urlStr := contentsPath(target, path)
	if target.Branch != "" {
		urlStr += "?ref=" + url.QueryEscape(target.Branch)
	}

	req, err := p.client.NewRequest(http.MethodGet, urlStr, nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to build request: %w", err)
	}

	var meta contentMetadata
	resp, err := p.client.Do(ctx, req, &meta)
	status, err := statusOf(resp, err)
	if err != nil {
		return "", status, err
	}
	return meta.SHA, status, nil
}

// contentsPath builds the API path relative to the client's base URL.
func contentsPath(target entities.Target, path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf(
		"repos/%s/%s/contents/%s",
		url.PathEscape(target.Owner),
		url.PathEscape(target.Name),
		strings.Join(segments, "/"),
	)
}

// statusOf separates HTTP outcomes from transport failures. go-github turns
// every non-2xx response into an error; those are reported as plain status
// codes. An error that came with a 2xx response means the body was unreadable.
func statusOf(resp *gh.Response, err error) (int, error) {
	if resp == nil || resp.Response == nil {
		if err == nil {
			return 0, errors.New("empty response")
		}
		return 0, err
	}

	status := resp.StatusCode
	if err != nil && status >= http.StatusOK && status < http.StatusMultipleChoices {
		return status, fmt.Errorf("failed to decode response: %w", err)
	}
	return status, nil
}

package github

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"
	gh "github.com/google/go-github/v68/github"

	"github.com/byte4ever/scaffold_remote/scaffold/hosting"
)

// DefaultAPIBase is the REST API root of github.com.
const DefaultAPIBase = "https://api.github.com"

// Config holds the settings needed to create a GitHub
// repository provider.
type Config struct {
	// APIBase is the REST API root. Leave empty for
	// github.com.
	APIBase string
	// Login is the GitHub user name. Leave empty to
	// send the creation request unauthenticated.
	Login string
	// Secret is the password paired with Login for
	// HTTP Basic authentication.
	Secret string
	// Token is an OAuth or personal access token.
	// When set, the official API client is used
	// instead of Basic authentication.
	Token string
	// EnterpriseHost is an optional GitHub
	// Enterprise hostname used in token mode (e.g.
	// "git.corp.example.com"). Leave empty for
	// github.com.
	EnterpriseHost string
}

// Provider creates repositories on GitHub.
//
// Pattern: Strategy -- implements hosting.Provider.
type Provider struct {
	apiBase string
	login   string
	secret  string
	client  *gh.Client
}

// createRequest is the wire format of the repository
// creation endpoint.
type createRequest struct {
	Name         string `json:"name"`
	Public       bool   `json:"public"`
	Description  string `json:"description,omitempty"`
	HasIssues    bool   `json:"has_issues"`
	HasWiki      bool   `json:"has_wiki"`
	HasDownloads bool   `json:"has_downloads"`
}

// createResponse carries the response fields consumed
// by the caller.
type createResponse struct {
	SSHURL  string `json:"ssh_url"`
	HTMLURL string `json:"html_url"`
}

// errorResponse carries the error message reported by
// the service on failure.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewProvider returns a Provider for cfg. When
// cfg.Token is set, requests go through the official
// API client; otherwise the repository is created with
// a direct POST, using Basic authentication when a
// login was resolved and no authentication at all
// otherwise.
func NewProvider(cfg Config) (*Provider, error) {
	const errCtx = "creating github provider"

	apiBase := cfg.APIBase
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}

	pv := &Provider{
		apiBase: apiBase,
		login:   cfg.Login,
		secret:  cfg.Secret,
	}

	if cfg.Token == "" {
		return pv, nil
	}

	client := gh.NewClient(nil).
		WithAuthToken(cfg.Token)

	switch {
	case cfg.EnterpriseHost != "":
		baseURL := "https://" +
			cfg.EnterpriseHost + "/api/v3/"
		uploadURL := "https://" +
			cfg.EnterpriseHost + "/api/uploads/"

		var err error

		client, err = client.WithEnterpriseURLs(
			baseURL, uploadURL,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: enterprise urls: %w",
				errCtx, err,
			)
		}

	case apiBase != DefaultAPIBase:
		// A custom API base applies to token mode
		// too, not only to the direct POST path.
		base, err := url.Parse(
			strings.TrimSuffix(apiBase, "/") + "/",
		)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: api base: %w", errCtx, err,
			)
		}

		client.BaseURL = base
	}

	pv.client = client

	return pv, nil
}

// CreateRepository creates a repository owned by the
// authenticated user and returns its clone URLs.
func (p *Provider) CreateRepository(
	ctx context.Context,
	req hosting.Request,
) (*hosting.Created, error) {
	if p.client != nil {
		return p.createWithToken(ctx, req)
	}

	return p.createWithBasicAuth(ctx, req)
}

// createWithToken creates the repository through the
// official API client.
func (p *Provider) createWithToken(
	ctx context.Context,
	req hosting.Request,
) (*hosting.Created, error) {
	const errCtx = "creating github repository"

	repo := &gh.Repository{
		Name:         gh.String(req.Name),
		Private:      gh.Bool(!req.Public),
		HasIssues:    gh.Bool(req.HasIssues),
		HasWiki:      gh.Bool(req.HasWiki),
		HasDownloads: gh.Bool(req.HasDownloads),
	}

	if req.Description != "" {
		repo.Description = gh.String(req.Description)
	}

	created, resp, err := p.client.Repositories.Create(
		ctx, "", repo,
	)
	if err != nil {
		// Log the response body for debugging.
		if resp != nil && resp.Body != nil {
			defer resp.Body.Close() //nolint:errcheck

			rb, readErr := io.ReadAll(resp.Body)
			if readErr == nil {
				slog.Warn(
					"github response",
					"body", string(rb),
				)
			}
		}

		return nil, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	slog.Info(
		"created repository",
		"url", created.GetHTMLURL(),
	)

	return &hosting.Created{
		SSHURL:  created.GetSSHURL(),
		HTMLURL: created.GetHTMLURL(),
	}, nil
}

// createWithBasicAuth creates the repository with a
// direct POST to the creation endpoint. The request is
// authenticated with HTTP Basic when a login is
// configured and sent bare otherwise; the service
// rejects it with an auth error if it requires
// authentication.
func (p *Provider) createWithBasicAuth(
	ctx context.Context,
	req hosting.Request,
) (*hosting.Created, error) {
	const errCtx = "creating github repository"

	payload, err := json.Marshal(&createRequest{
		Name:         req.Name,
		Public:       req.Public,
		Description:  req.Description,
		HasIssues:    req.HasIssues,
		HasWiki:      req.HasWiki,
		HasDownloads: req.HasDownloads,
	})
	if err != nil {
		return nil, fmt.Errorf(
			"%s: marshal request: %w", errCtx, err,
		)
	}

	hreq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.apiBase+"/user/repos",
		bytes.NewBuffer(payload),
	)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: build request: %w", errCtx, err,
		)
	}

	hreq.Header.Set(
		"Content-Type",
		"application/json; charset=utf-8",
	)

	if p.login != "" {
		hreq.SetBasicAuth(p.login, p.secret)
	}

	resp, err := http.DefaultClient.Do(hreq)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: send request: %w", errCtx, err,
		)
	}

	defer resp.Body.Close() //nolint:errcheck

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: read response: %w", errCtx, err,
		)
	}

	if resp.StatusCode < http.StatusOK ||
		resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf(
			"%s: %s",
			errCtx, serviceError(resp.Status, rb),
		)
	}

	var created createResponse

	if err := json.Unmarshal(rb, &created); err != nil {
		return nil, fmt.Errorf(
			"%s: decode response: %w", errCtx, err,
		)
	}

	slog.Info(
		"created repository",
		"url", created.HTMLURL,
	)

	return &hosting.Created{
		SSHURL:  created.SSHURL,
		HTMLURL: created.HTMLURL,
	}, nil
}

// serviceError extracts the error message reported by
// the service from a structured body, falling back to
// the status line.
func serviceError(status string, body []byte) string {
	var er errorResponse

	if err := json.Unmarshal(body, &er); err == nil {
		if er.Error != "" {
			return er.Error
		}

		if er.Message != "" {
			return er.Message
		}
	}

	return status
}

package gitlab

import (
	"context"
	"fmt"
	"log/slog"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/byte4ever/scaffold_remote/scaffold/hosting"
)

// Config holds the settings needed to create a GitLab
// repository provider.
type Config struct {
	// Host is the base URL of the GitLab instance
	// (e.g. "https://gitlab.com").
	Host string
	// AccessToken is a personal or project access
	// token used for authentication.
	AccessToken string
}

// Provider creates projects on GitLab.
//
// Pattern: Strategy -- implements hosting.Provider.
type Provider struct {
	client *gl.Client
}

// NewProvider validates cfg and returns a Provider
// ready to create projects.
func NewProvider(cfg Config) (*Provider, error) {
	const errCtx = "creating gitlab provider"

	if cfg.AccessToken == "" {
		return nil, fmt.Errorf(
			"%s: access token must be set", errCtx,
		)
	}

	host := cfg.Host
	if host == "" {
		host = "https://gitlab.com"
	}

	client, err := gl.NewClient(
		cfg.AccessToken,
		gl.WithBaseURL(host),
	)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: new client: %w", errCtx, err,
		)
	}

	return &Provider{client: client}, nil
}

// CreateRepository creates a project owned by the
// authenticated user. The downloads flag has no GitLab
// counterpart and is ignored.
func (p *Provider) CreateRepository(
	ctx context.Context,
	req hosting.Request,
) (*hosting.Created, error) {
	const errCtx = "creating gitlab project"

	visibility := gl.PrivateVisibility
	if req.Public {
		visibility = gl.PublicVisibility
	}

	opts := gl.CreateProjectOptions{
		Name:       gl.Ptr(req.Name),
		Visibility: gl.Ptr(visibility),
		IssuesAccessLevel: gl.Ptr(
			accessLevel(req.HasIssues),
		),
		WikiAccessLevel: gl.Ptr(
			accessLevel(req.HasWiki),
		),
	}

	if req.Description != "" {
		opts.Description = gl.Ptr(req.Description)
	}

	created, _, err := p.client.Projects.CreateProject(
		&opts, gl.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	slog.Info(
		"created project",
		"url", created.WebURL,
	)

	return &hosting.Created{
		SSHURL:  created.SSHURLToRepo,
		HTMLURL: created.WebURL,
	}, nil
}

// accessLevel maps an enabled flag to the GitLab
// feature access level.
func accessLevel(enabled bool) gl.AccessControlValue {
	if enabled {
		return gl.EnabledAccessControl
	}

	return gl.DisabledAccessControl
}

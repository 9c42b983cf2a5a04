package hosting

import "context"

// Pattern: Strategy -- swap git hosting platform
// without changing the provisioning logic.

// Request describes the repository to create on the
// hosting platform.
type Request struct {
	// Name is the repository name (without owner).
	Name string
	// Public makes the repository publicly visible.
	Public bool
	// Description is an optional one-line summary.
	Description string
	// HasIssues enables the issue tracker.
	HasIssues bool
	// HasWiki enables the wiki.
	HasWiki bool
	// HasDownloads enables downloads.
	HasDownloads bool
}

// Created holds the fields of a freshly created
// repository that the caller consumes.
type Created struct {
	// SSHURL is the ssh clone URL used to register
	// the local remote.
	SSHURL string
	// HTMLURL is the repository's web page, shown to
	// the user.
	HTMLURL string
}

// Provider creates repositories on a git hosting
// platform.
type Provider interface {
	CreateRepository(
		ctx context.Context,
		req Request,
	) (*Created, error)
}

// ProviderFunc adapts a plain function to the Provider
// interface.
type ProviderFunc func(
	ctx context.Context,
	req Request,
) (*Created, error)

// CreateRepository delegates to the wrapped function.
func (f ProviderFunc) CreateRepository(
	ctx context.Context,
	req Request,
) (*Created, error) {
	return f(ctx, req)
}

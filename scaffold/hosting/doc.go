// Package hosting defines a strategy interface for creating
// repositories across different git hosting platforms.
//
// The Provider interface abstracts repository creation.
// Implementations exist for GitHub and GitLab in sub-packages.
// ProviderFunc is a convenience adapter that lets plain functions
// satisfy the interface.
package hosting

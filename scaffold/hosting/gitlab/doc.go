// Package gitlab creates projects on a GitLab instance through
// the official API client.
package gitlab

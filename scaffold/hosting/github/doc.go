// Package github creates repositories on GitHub, either with a
// direct POST to the user/repos endpoint (HTTP Basic or
// unauthenticated) or through the official API client when an
// access token is configured.
package github

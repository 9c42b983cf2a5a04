package github_test

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/scaffold_remote/scaffold/hosting"
	ghprov "github.com/byte4ever/scaffold_remote/scaffold/hosting/github"
)

func TestProvider_CreateRepository_created(
	t *testing.T,
) {
	t.Parallel()

	var (
		gotBody []byte
		gotAuth string
		gotPath string
	)

	ts := httptest.NewServer(
		http.HandlerFunc(
			func(
				w http.ResponseWriter,
				r *http.Request,
			) {
				gotPath = r.URL.Path
				gotAuth = r.Header.Get(
					"Authorization",
				)

				var err error

				gotBody, err = io.ReadAll(r.Body)
				if err != nil {
					http.Error(
						w,
						"read error",
						http.StatusInternalServerError,
					)

					return
				}

				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(
					`{"ssh_url":"git@github.com:bob/my-repo.git",` +
						`"html_url":"https://github.com/bob/my-repo"}`,
				))
			},
		),
	)
	defer ts.Close()

	pv, err := ghprov.NewProvider(ghprov.Config{
		APIBase: ts.URL,
		Login:   "bob",
		Secret:  "s3cret",
	})
	require.NoError(t, err)

	created, err := pv.CreateRepository(
		context.Background(),
		hosting.Request{
			Name:         "my-repo",
			Public:       true,
			Description:  "hello world",
			HasIssues:    true,
			HasWiki:      true,
			HasDownloads: true,
		},
	)

	require.NoError(t, err)
	assert.Equal(
		t,
		"git@github.com:bob/my-repo.git",
		created.SSHURL,
	)
	assert.Equal(
		t,
		"https://github.com/bob/my-repo",
		created.HTMLURL,
	)
	assert.Equal(t, "/user/repos", gotPath)

	// Basic auth with the secret as password.
	wantAuth := "Basic " +
		base64.StdEncoding.EncodeToString(
			[]byte("bob:s3cret"),
		)
	assert.Equal(t, wantAuth, gotAuth)

	// Exactly the documented wire fields.
	var fields map[string]any

	require.NoError(
		t, json.Unmarshal(gotBody, &fields),
	)
	assert.Equal(
		t,
		map[string]any{
			"name":          "my-repo",
			"public":        true,
			"description":   "hello world",
			"has_issues":    true,
			"has_wiki":      true,
			"has_downloads": true,
		},
		fields,
	)
}

func TestProvider_CreateRepository_omits_description(
	t *testing.T,
) {
	t.Parallel()

	var gotBody []byte

	ts := httptest.NewServer(
		http.HandlerFunc(
			func(
				w http.ResponseWriter,
				r *http.Request,
			) {
				gotBody, _ = io.ReadAll(r.Body)

				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(
					`{"ssh_url":"git@github.com:o/r.git"}`,
				))
			},
		),
	)
	defer ts.Close()

	pv, err := ghprov.NewProvider(ghprov.Config{
		APIBase: ts.URL,
		Login:   "bob",
		Secret:  "s3cret",
	})
	require.NoError(t, err)

	_, err = pv.CreateRepository(
		context.Background(),
		hosting.Request{
			Name:         "r",
			Public:       false,
			HasIssues:    true,
			HasWiki:      false,
			HasDownloads: true,
		},
	)
	require.NoError(t, err)

	var fields map[string]any

	require.NoError(
		t, json.Unmarshal(gotBody, &fields),
	)
	assert.NotContains(t, fields, "description")
	assert.Equal(t, false, fields["public"])
	assert.Equal(t, false, fields["has_wiki"])
}

func TestProvider_CreateRepository_unauthenticated(
	t *testing.T,
) {
	t.Parallel()

	var gotAuth string

	ts := httptest.NewServer(
		http.HandlerFunc(
			func(
				w http.ResponseWriter,
				r *http.Request,
			) {
				gotAuth = r.Header.Get(
					"Authorization",
				)

				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(
					`{"ssh_url":"git@github.com:o/r.git"}`,
				))
			},
		),
	)
	defer ts.Close()

	pv, err := ghprov.NewProvider(ghprov.Config{
		APIBase: ts.URL,
	})
	require.NoError(t, err)

	_, err = pv.CreateRepository(
		context.Background(),
		hosting.Request{Name: "r", Public: true},
	)

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestProvider_CreateRepository_service_error(
	t *testing.T,
) {
	t.Parallel()

	ts := httptest.NewServer(
		http.HandlerFunc(
			func(
				w http.ResponseWriter,
				_ *http.Request,
			) {
				w.WriteHeader(
					http.StatusUnauthorized,
				)
				_, _ = w.Write([]byte(
					`{"message":"Requires authentication"}`,
				))
			},
		),
	)
	defer ts.Close()

	pv, err := ghprov.NewProvider(ghprov.Config{
		APIBase: ts.URL,
	})
	require.NoError(t, err)

	created, err := pv.CreateRepository(
		context.Background(),
		hosting.Request{Name: "r"},
	)

	assert.Nil(t, created)
	assert.ErrorContains(
		t, err, "Requires authentication",
	)
}

func TestProvider_CreateRepository_raw_status(
	t *testing.T,
) {
	t.Parallel()

	ts := httptest.NewServer(
		http.HandlerFunc(
			func(
				w http.ResponseWriter,
				_ *http.Request,
			) {
				w.WriteHeader(
					http.StatusBadGateway,
				)
				_, _ = w.Write(
					[]byte("not json at all"),
				)
			},
		),
	)
	defer ts.Close()

	pv, err := ghprov.NewProvider(ghprov.Config{
		APIBase: ts.URL,
		Login:   "bob",
		Secret:  "s3cret",
	})
	require.NoError(t, err)

	created, err := pv.CreateRepository(
		context.Background(),
		hosting.Request{Name: "r"},
	)

	assert.Nil(t, created)
	assert.ErrorContains(t, err, "502")
}

func TestProvider_CreateRepository_token_mode(
	t *testing.T,
) {
	t.Parallel()

	var (
		gotPath string
		gotAuth string
		gotBody []byte
	)

	ts := httptest.NewServer(
		http.HandlerFunc(
			func(
				w http.ResponseWriter,
				r *http.Request,
			) {
				gotPath = r.URL.Path
				gotAuth = r.Header.Get(
					"Authorization",
				)
				gotBody, _ = io.ReadAll(r.Body)

				w.Header().Set(
					"Content-Type",
					"application/json",
				)
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(
					`{"ssh_url":"git@github.com:bob/my-repo.git",` +
						`"html_url":"https://github.com/bob/my-repo"}`,
				))
			},
		),
	)
	defer ts.Close()

	// A custom API base must be honored in token
	// mode as well.
	pv, err := ghprov.NewProvider(ghprov.Config{
		APIBase: ts.URL,
		Token:   "tok",
	})
	require.NoError(t, err)

	created, err := pv.CreateRepository(
		context.Background(),
		hosting.Request{
			Name:         "my-repo",
			Public:       true,
			HasIssues:    true,
			HasWiki:      true,
			HasDownloads: true,
		},
	)

	require.NoError(t, err)
	assert.Equal(t, "/user/repos", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(
		t,
		"git@github.com:bob/my-repo.git",
		created.SSHURL,
	)

	var fields map[string]any

	require.NoError(
		t, json.Unmarshal(gotBody, &fields),
	)
	assert.Equal(t, "my-repo", fields["name"])
	assert.Equal(t, false, fields["private"])
}

func TestProvider_CreateRepository_token_mode_error(
	t *testing.T,
) {
	t.Parallel()

	ts := httptest.NewServer(
		http.HandlerFunc(
			func(
				w http.ResponseWriter,
				_ *http.Request,
			) {
				w.Header().Set(
					"Content-Type",
					"application/json",
				)
				w.WriteHeader(
					http.StatusUnprocessableEntity,
				)
				_, _ = w.Write([]byte(
					`{"message":"name already exists"}`,
				))
			},
		),
	)
	defer ts.Close()

	pv, err := ghprov.NewProvider(ghprov.Config{
		APIBase: ts.URL,
		Token:   "tok",
	})
	require.NoError(t, err)

	created, err := pv.CreateRepository(
		context.Background(),
		hosting.Request{Name: "my-repo"},
	)

	assert.Nil(t, created)
	assert.ErrorContains(
		t, err, "name already exists",
	)
}

func TestNewProvider_enterprise_token(t *testing.T) {
	t.Parallel()

	pv, err := ghprov.NewProvider(ghprov.Config{
		Token:          "tok",
		EnterpriseHost: "git.corp.example.com",
	})

	require.NoError(t, err)
	assert.NotNil(t, pv)
}

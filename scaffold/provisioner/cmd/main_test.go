package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/byte4ever/scaffold_remote/scaffold/config"
)

func TestApplyOverrides_unset_flags_no_effect(
	t *testing.T,
) {
	t.Parallel()

	opts := config.Default()
	opts.Prompt = true
	opts.HasWiki = false

	applyOverrides(
		&opts,
		map[string]bool{},
		overrides{
			service: "gitlab",
			prompt:  false,
			noWiki:  true,
		},
	)

	// Nothing was passed on the command line, so
	// the loaded options survive untouched.
	assert.True(t, opts.Prompt)
	assert.False(t, opts.HasWiki)
	assert.Equal(t, "github", opts.Service)
}

func TestApplyOverrides_flags_win_both_ways(
	t *testing.T,
) {
	t.Parallel()

	opts := config.Default()
	opts.Prompt = true
	opts.Public = false
	opts.HasWiki = false

	applyOverrides(
		&opts,
		map[string]bool{
			"prompt":  true,
			"private": true,
			"no_wiki": true,
		},
		overrides{
			prompt:  false,
			private: false,
			noWiki:  false,
		},
	)

	// -prompt=false undoes "prompt: true",
	// -private=false undoes "public: false", and
	// -no_wiki=false undoes "has_wiki: false".
	assert.False(t, opts.Prompt)
	assert.True(t, opts.Public)
	assert.True(t, opts.HasWiki)
}

func TestApplyOverrides_strings(t *testing.T) {
	t.Parallel()

	opts := config.Default()
	opts.Service = "gitlab"
	opts.Remote = "upstream"

	applyOverrides(
		&opts,
		map[string]bool{
			"service":       true,
			"remote":        true,
			"api_base":      true,
			"repo_template": true,
		},
		overrides{
			service:      "github",
			remote:       "origin",
			apiBase:      "https://ghe.corp/api/v3",
			repoTemplate: "{name_lc}-dist",
		},
	)

	assert.Equal(t, "github", opts.Service)
	assert.Equal(t, "origin", opts.Remote)
	assert.Equal(
		t, "https://ghe.corp/api/v3", opts.APIBase,
	)
	assert.Equal(t, "{name_lc}-dist", opts.Repo)
}

func TestApplyOverrides_disables_features(
	t *testing.T,
) {
	t.Parallel()

	opts := config.Default()

	applyOverrides(
		&opts,
		map[string]bool{
			"no_issues":    true,
			"no_downloads": true,
		},
		overrides{
			noIssues:    true,
			noDownloads: true,
		},
	)

	assert.False(t, opts.HasIssues)
	assert.False(t, opts.HasDownloads)
	assert.True(t, opts.HasWiki)
}

package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Options is the immutable configuration surface of
// the provisioner, populated once at startup.
type Options struct {
	// Repo is the repository name or a name
	// template expanded against project metadata.
	// Empty means "use the project name".
	Repo string

	// Prompt asks for confirmation before creating
	// the remote repository.
	Prompt bool

	// Public makes the created repository publicly
	// visible.
	Public bool

	// Remote is the name under which the created
	// repository is registered locally.
	Remote string

	// HasIssues enables the issue tracker.
	HasIssues bool

	// HasWiki enables the wiki.
	HasWiki bool

	// HasDownloads enables downloads.
	HasDownloads bool

	// Service selects the hosting backend ("github"
	// or "gitlab").
	Service string

	// APIBase overrides the REST API root of the
	// github backend.
	APIBase string

	// Host is the base URL of the gitlab instance.
	Host string
}

// document is the YAML form of Options. Booleans are
// pointers so an absent key and an explicit false stay
// distinguishable when applying defaults.
type document struct {
	Repo         *string `yaml:"repo"`
	Prompt       *bool   `yaml:"prompt"`
	Public       *bool   `yaml:"public"`
	Remote       *string `yaml:"remote"`
	HasIssues    *bool   `yaml:"has_issues"`
	HasWiki      *bool   `yaml:"has_wiki"`
	HasDownloads *bool   `yaml:"has_downloads"`
	Service      *string `yaml:"service"`
	APIBase      *string `yaml:"api_base"`
	Host         *string `yaml:"host"`
}

// Default returns the documented option defaults.
func Default() Options {
	return Options{
		Repo:         "",
		Prompt:       false,
		Public:       true,
		Remote:       "origin",
		HasIssues:    true,
		HasWiki:      true,
		HasDownloads: true,
		Service:      "github",
	}
}

// Load reads a YAML options file and applies it over
// the defaults.
func Load(path string) (Options, error) {
	const errCtx = "loading options"

	raw, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return Options{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	var doc document

	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Options{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	opts := Default()

	applyString(&opts.Repo, doc.Repo)
	applyBool(&opts.Prompt, doc.Prompt)
	applyBool(&opts.Public, doc.Public)
	applyString(&opts.Remote, doc.Remote)
	applyBool(&opts.HasIssues, doc.HasIssues)
	applyBool(&opts.HasWiki, doc.HasWiki)
	applyBool(&opts.HasDownloads, doc.HasDownloads)
	applyString(&opts.Service, doc.Service)
	applyString(&opts.APIBase, doc.APIBase)
	applyString(&opts.Host, doc.Host)

	return opts, nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func applyBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

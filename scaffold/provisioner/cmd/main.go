// Command create_remote_repo provisions a remote
// repository for a freshly minted project: it creates
// the repository on the configured git hosting
// platform and wires the local working copy to track
// it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/byte4ever/scaffold_remote/scaffold/config"
	"github.com/byte4ever/scaffold_remote/scaffold/provisioner"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // CLI flag setup is inherently long
func run() error {
	const errCtx = "running create_remote_repo"

	// Scaffold context flags.
	root := flag.String(
		"root", ".",
		"Mint root: directory of the new project",
	)
	name := flag.String(
		"name", "",
		"Project name (defaults to the root "+
			"directory name)",
	)
	repo := flag.String(
		"repo", "",
		"Explicit repository name, overriding the "+
			"configured name template",
	)
	description := flag.String(
		"description", "",
		"Repository description",
	)

	// Options flags.
	configPath := flag.String(
		"config", "",
		"Path to a YAML options file",
	)
	service := flag.String(
		"service", "",
		"Hosting platform: github or gitlab",
	)
	apiBase := flag.String(
		"api_base", "",
		"REST API root for the github backend",
	)
	host := flag.String(
		"host", "",
		"Instance URL for the gitlab backend",
	)
	remote := flag.String(
		"remote", "",
		"Name for the local remote",
	)
	repoTemplate := flag.String(
		"repo_template", "",
		"Repository name template, expanded with "+
			"{name}, {name_lc} and {description}",
	)
	promptFirst := flag.Bool(
		"prompt", false,
		"Ask for confirmation before creating",
	)
	private := flag.Bool(
		"private", false,
		"Create the repository private",
	)
	noIssues := flag.Bool(
		"no_issues", false,
		"Disable the issue tracker",
	)
	noWiki := flag.Bool(
		"no_wiki", false,
		"Disable the wiki",
	)
	noDownloads := flag.Bool(
		"no_downloads", false,
		"Disable downloads",
	)

	flag.Parse()

	opts := config.Default()

	if *configPath != "" {
		var err error

		opts, err = config.Load(*configPath)
		if err != nil {
			return fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}
	}

	set := make(map[string]bool)

	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	applyOverrides(&opts, set, overrides{
		service:      *service,
		apiBase:      *apiBase,
		host:         *host,
		remote:       *remote,
		repoTemplate: *repoTemplate,
		prompt:       *promptFirst,
		private:      *private,
		noIssues:     *noIssues,
		noWiki:       *noWiki,
		noDownloads:  *noDownloads,
	})

	absRoot, err := filepath.Abs(*root)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	projectName := *name
	if projectName == "" {
		projectName = filepath.Base(absRoot)
	}

	cfg := provisioner.Config{
		Root:        absRoot,
		ProjectName: projectName,
		RepoName:    *repo,
		Description: *description,
		Options:     opts,
	}

	if err := provisioner.Run(
		context.Background(), cfg,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// overrides bundles flag values so applyOverrides
// stays under the 4-argument limit.
type overrides struct {
	service      string
	apiBase      string
	host         string
	remote       string
	repoTemplate string
	prompt       bool
	private      bool
	noIssues     bool
	noWiki       bool
	noDownloads  bool
}

// applyOverrides applies flag values over the loaded
// options. Only flags the user actually passed (per
// set) take effect, in either direction, so a flag can
// also undo an options-file value (e.g. -prompt=false
// against "prompt: true").
func applyOverrides(
	opts *config.Options,
	set map[string]bool,
	ov overrides,
) {
	if set["service"] {
		opts.Service = ov.service
	}

	if set["api_base"] {
		opts.APIBase = ov.apiBase
	}

	if set["host"] {
		opts.Host = ov.host
	}

	if set["remote"] {
		opts.Remote = ov.remote
	}

	if set["repo_template"] {
		opts.Repo = ov.repoTemplate
	}

	if set["prompt"] {
		opts.Prompt = ov.prompt
	}

	if set["private"] {
		opts.Public = !ov.private
	}

	if set["no_issues"] {
		opts.HasIssues = !ov.noIssues
	}

	if set["no_wiki"] {
		opts.HasWiki = !ov.noWiki
	}

	if set["no_downloads"] {
		opts.HasDownloads = !ov.noDownloads
	}
}

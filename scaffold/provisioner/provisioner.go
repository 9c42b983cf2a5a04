package provisioner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/byte4ever/scaffold_remote/scaffold/config"
	"github.com/byte4ever/scaffold_remote/scaffold/creds"
	"github.com/byte4ever/scaffold_remote/scaffold/git"
	"github.com/byte4ever/scaffold_remote/scaffold/hosting"
	"github.com/byte4ever/scaffold_remote/scaffold/hosting/github"
	"github.com/byte4ever/scaffold_remote/scaffold/hosting/gitlab"
	"github.com/byte4ever/scaffold_remote/scaffold/prompt"
)

// Config holds all settings for one provisioning run.
// Use a Config struct instead of many arguments.
type Config struct {
	// Root is the mint root: the directory the
	// project was scaffolded into.
	Root string

	// ProjectName is the name of the minted project.
	ProjectName string

	// RepoName is an explicit repository name passed
	// by the caller. It takes precedence over the
	// configured name template.
	RepoName string

	// Description is an optional repository
	// description passed by the caller.
	Description string

	// Options is the resolved configuration surface.
	Options config.Options

	// Provider creates the remote repository. Leave
	// nil to have Run build one from Options and the
	// resolved credentials.
	Provider hosting.Provider

	// Sources overrides the credential resolution
	// chain. Leave nil for the default chain (global
	// git config, then identity file with
	// interactive secret entry).
	Sources []creds.Source

	// In and Out are the interaction streams. They
	// default to stdin and stdout.
	In  io.Reader
	Out io.Writer
}

// Run provisions a remote repository for a freshly
// minted project: it optionally confirms with the
// user, resolves the target name and credentials,
// creates the repository on the hosting platform, and
// wires the local working copy to track it. Local
// state is only touched after remote creation is
// confirmed successful.
func Run(ctx context.Context, cfg Config) error {
	const errCtx = "provisioning remote repository"

	in := cfg.In
	if in == nil {
		in = os.Stdin
	}

	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	// One shared reader for every prompt of this
	// run, so no buffered input is lost between
	// them.
	rd := prompt.NewReader(in)

	// Step 1: Optional confirmation.
	if cfg.Options.Prompt {
		question := fmt.Sprintf(
			"Shall I create a remote repository for %s?",
			cfg.ProjectName,
		)

		if !rd.Confirm(out, question, true) {
			slog.Info(
				"remote repository creation declined",
			)

			return nil
		}
	}

	// Step 2: Resolve the target repository name.
	name := resolveName(cfg)

	// Step 3+4: Resolve credentials and build the
	// provider, unless one was injected.
	provider := cfg.Provider

	if provider == nil {
		var err error

		provider, err = buildProvider(
			ctx, cfg, rd, out,
		)
		if err != nil {
			return fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}
	}

	req := hosting.Request{
		Name:         name,
		Public:       cfg.Options.Public,
		Description:  cfg.Description,
		HasIssues:    cfg.Options.HasIssues,
		HasWiki:      cfg.Options.HasWiki,
		HasDownloads: cfg.Options.HasDownloads,
	}

	slog.Debug(
		"repository features",
		"public", req.Public,
		"has_issues", req.HasIssues,
		"has_wiki", req.HasWiki,
		"has_downloads", req.HasDownloads,
	)

	// Step 5+6: Create the remote repository. A
	// failure here is terminal: nothing local has
	// been touched yet.
	created, err := provider.CreateRepository(ctx, req)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	// Step 7: Wire the local working copy.
	if err := wireLocal(ctx, cfg, created); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// resolveName picks the repository name: explicit
// caller name, then the configured template expanded
// against project metadata, then the project name.
func resolveName(cfg Config) string {
	if cfg.RepoName != "" {
		return cfg.RepoName
	}

	if cfg.Options.Repo != "" {
		return fasttemplate.ExecuteStringStd(
			cfg.Options.Repo, "{", "}",
			map[string]interface{}{
				"name": cfg.ProjectName,
				"name_lc": strings.ToLower(
					cfg.ProjectName,
				),
				"description": cfg.Description,
			},
		)
	}

	return cfg.ProjectName
}

// buildProvider resolves credentials and constructs
// the hosting backend selected by the options.
func buildProvider(
	ctx context.Context,
	cfg Config,
	rd *prompt.Reader,
	out io.Writer,
) (hosting.Provider, error) {
	const errCtx = "building hosting provider"

	service := cfg.Options.Service
	if service == "" {
		service = "github"
	}

	sources := cfg.Sources
	if sources == nil {
		sources = defaultSources(service, rd, out)
	}

	cr := creds.Resolve(ctx, sources...)

	switch service {
	case "github":
		return github.NewProvider(github.Config{
			APIBase: cfg.Options.APIBase,
			Login:   cr.Login,
			Secret:  cr.Secret,
			Token:   cr.Token,
		})
	case "gitlab":
		token := cr.Token
		if token == "" {
			token = cr.Secret
		}

		return gitlab.NewProvider(gitlab.Config{
			Host:        cfg.Options.Host,
			AccessToken: token,
		})
	default:
		return nil, fmt.Errorf(
			"%s: unsupported service %q",
			errCtx, service,
		)
	}
}

// defaultSources is the documented credential chain:
// global git config first, then the per-user identity
// file with interactive secret entry for a bare login.
func defaultSources(
	service string,
	rd *prompt.Reader,
	out io.Writer,
) []creds.Source {
	home, err := os.UserHomeDir()
	if err != nil {
		slog.Debug(
			"cannot resolve home directory",
			"error", err,
		)

		return []creds.Source{
			creds.GitConfig(service),
		}
	}

	return []creds.Source{
		creds.GitConfig(service),
		creds.FillSecret(
			creds.IdentityFile(home, service),
			func() (string, error) {
				return rd.Secret(
					out,
					service+" password",
				)
			},
		),
	}
}

// wireLocal registers the created repository as a
// remote of the local working copy and configures
// upstream tracking for the current branch. The whole
// step is skipped when there is no working copy or the
// remote name is already taken, which keeps repeated
// invocations idempotent.
func wireLocal(
	ctx context.Context,
	cfg Config,
	created *hosting.Created,
) error {
	const errCtx = "wiring local repository"

	if !git.IsRepo(cfg.Root) {
		slog.Debug(
			"no local working copy, skipping git setup",
			"root", cfg.Root,
		)

		return nil
	}

	remote := cfg.Options.Remote
	if remote == "" {
		remote = "origin"
	}

	rp := git.Open(cfg.Root)

	if rp.HasRemote(ctx, remote) {
		slog.Info(
			"remote already configured, skipping",
			"remote", remote,
		)

		return nil
	}

	if err := rp.AddRemote(
		ctx, remote, created.SSHURL,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Info(
		"registered remote",
		"remote", remote,
		"url", created.SSHURL,
	)

	branch, ok := rp.CurrentBranch(ctx)
	if !ok {
		slog.Debug(
			"current branch not resolvable, skipping tracking",
		)

		return nil
	}

	if rp.HasTracking(ctx, branch) {
		slog.Debug(
			"branch tracking already configured",
			"branch", branch,
		)

		return nil
	}

	if err := rp.SetTracking(
		ctx, branch, remote,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Info(
		"configured branch tracking",
		"branch", branch,
		"remote", remote,
	)

	return nil
}

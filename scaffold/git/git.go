package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/byte4ever/scaffold_remote/scaffold/exec"
)

// Repo is an existing local git working copy. Create
// with Open after checking IsRepo.
type Repo struct {
	// Dir is the filesystem location of the working
	// copy.
	Dir string
}

// IsRepo reports whether dir contains a git working
// copy (a .git entry exists directly under it).
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))

	return err == nil
}

// Open returns a Repo for dir. It does not validate
// the directory; call IsRepo first.
func Open(dir string) *Repo {
	return &Repo{Dir: dir}
}

// HasRemote reports whether a remote with the given
// name is configured. Any probe failure reads as
// absent.
func (r *Repo) HasRemote(
	ctx context.Context,
	name string,
) bool {
	out, err := exec.Ex(
		ctx, r.Dir, "git",
		"config", "--get",
		"remote."+name+".url",
	)
	if err != nil {
		return false
	}

	return strings.TrimSpace(out) != ""
}

// AddRemote registers a new remote pointing at url.
func (r *Repo) AddRemote(
	ctx context.Context,
	name string,
	url string,
) error {
	const errCtx = "adding remote"

	if _, err := exec.Ex(
		ctx, r.Dir, "git",
		"remote", "add", name, url,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// CurrentBranch returns the symbolic name of the
// checked-out branch. The second return value is false
// when the name cannot be resolved (detached HEAD,
// unborn branch).
func (r *Repo) CurrentBranch(
	ctx context.Context,
) (string, bool) {
	out, err := exec.Ex(
		ctx, r.Dir, "git",
		"symbolic-ref", "--short", "HEAD",
	)
	if err != nil {
		return "", false
	}

	branch := strings.TrimSpace(out)
	if branch == "" {
		return "", false
	}

	return branch, true
}

// HasTracking reports whether branch already carries
// upstream tracking configuration. Probe failures read
// as absent.
func (r *Repo) HasTracking(
	ctx context.Context,
	branch string,
) bool {
	for _, key := range []string{
		"branch." + branch + ".merge",
		"branch." + branch + ".remote",
	} {
		out, err := exec.Ex(
			ctx, r.Dir, "git",
			"config", "--get", key,
		)
		if err == nil && strings.TrimSpace(out) != "" {
			return true
		}
	}

	return false
}

// SetTracking configures branch to track the given
// remote: branch.<b>.merge is set to refs/heads/<b>
// and branch.<b>.remote to the remote name.
func (r *Repo) SetTracking(
	ctx context.Context,
	branch string,
	remote string,
) error {
	const errCtx = "setting branch tracking"

	if _, err := exec.Ex(
		ctx, r.Dir, "git",
		"config",
		"branch."+branch+".merge",
		"refs/heads/"+branch,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if _, err := exec.Ex(
		ctx, r.Dir, "git",
		"config",
		"branch."+branch+".remote",
		remote,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

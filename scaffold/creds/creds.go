package creds

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/byte4ever/scaffold_remote/scaffold/exec"
)

// Credentials is a resolved login/secret pair. Token,
// when present, takes precedence over Secret at the
// transport layer.
type Credentials struct {
	Login  string
	Secret string
	Token  string
}

// Empty reports whether the credentials carry nothing
// usable.
func (c Credentials) Empty() bool {
	return c.Login == "" && c.Token == ""
}

// Source produces credentials from one origin. An
// error or an empty result both mean "nothing here";
// Resolve moves on to the next source either way.
type Source func(
	ctx context.Context,
) (Credentials, error)

// Resolve walks the sources in order and returns the
// first non-empty result. Source errors are logged and
// treated as absence. When every source comes up empty
// the zero Credentials is returned and the caller
// proceeds unauthenticated.
func Resolve(
	ctx context.Context,
	sources ...Source,
) Credentials {
	for _, src := range sources {
		cr, err := src(ctx)
		if err != nil {
			slog.Debug(
				"credential source failed",
				"error", err,
			)

			continue
		}

		if !cr.Empty() {
			return cr
		}
	}

	slog.Warn(
		"no credentials found, proceeding unauthenticated",
	)

	return Credentials{}
}

// GitConfig reads <service>.user, <service>.password
// and <service>.token from the global git
// configuration.
func GitConfig(service string) Source {
	return func(
		ctx context.Context,
	) (Credentials, error) {
		return Credentials{
			Login: gitConfigGet(
				ctx, service+".user",
			),
			Secret: gitConfigGet(
				ctx, service+".password",
			),
			Token: gitConfigGet(
				ctx, service+".token",
			),
		}, nil
	}
}

// gitConfigGet returns the value of a global git
// config key, or empty string when unset or
// unreadable.
func gitConfigGet(
	ctx context.Context,
	key string,
) string {
	out, err := exec.Redacted(
		ctx, "", "git",
		"config", "--global", "--get", key,
	)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(out)
}

// IdentityFile reads credentials from the per-user
// identity file dir/.<service>. The file holds
// whitespace-separated key/value lines (login,
// password, token), with "#" comments. A missing file
// is not an error. A GPG-encrypted file is decrypted
// by shelling out to gpg.
func IdentityFile(dir, service string) Source {
	return func(
		ctx context.Context,
	) (Credentials, error) {
		const errCtx = "reading identity file"

		path := filepath.Join(dir, "."+service)

		raw, err := os.ReadFile(path) //nolint:gosec // path rooted at the user's home
		if err != nil {
			if os.IsNotExist(err) {
				return Credentials{}, nil
			}

			return Credentials{}, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		if looksEncrypted(raw) {
			out, gpgErr := exec.Redacted(
				ctx, "", "gpg", "-qd", path,
			)
			if gpgErr != nil {
				return Credentials{}, fmt.Errorf(
					"%s: decrypt: %w",
					errCtx, gpgErr,
				)
			}

			raw = []byte(out)
		}

		return parseIdentity(raw), nil
	}
}

// looksEncrypted reports whether the identity file
// content is a GPG message (armored header or OpenPGP
// packet framing).
func looksEncrypted(raw []byte) bool {
	if bytes.HasPrefix(
		raw, []byte("-----BEGIN PGP MESSAGE-----"),
	) {
		return true
	}

	return len(raw) > 0 && raw[0]&0x80 != 0
}

// parseIdentity extracts login/password/token lines.
func parseIdentity(raw []byte) Credentials {
	var cr Credentials

	for _, line := range strings.Split(
		string(raw), "\n",
	) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) != 2 {
			continue
		}

		switch parts[0] {
		case "login":
			cr.Login = parts[1]
		case "password":
			cr.Secret = parts[1]
		case "token":
			cr.Token = parts[1]
		}
	}

	return cr
}

// FillSecret decorates a source so that a login
// resolved without secret or token gets its secret
// from promptFn (typically an interactive prompt). A
// prompt failure leaves the secret empty rather than
// failing resolution.
func FillSecret(
	src Source,
	promptFn func() (string, error),
) Source {
	return func(
		ctx context.Context,
	) (Credentials, error) {
		cr, err := src(ctx)
		if err != nil || cr.Empty() {
			return cr, err
		}

		if cr.Secret == "" && cr.Token == "" {
			secret, promptErr := promptFn()
			if promptErr != nil {
				slog.Warn(
					"secret prompt failed",
					"error", promptErr,
				)

				return cr, nil
			}

			cr.Secret = secret
		}

		return cr, nil
	}
}

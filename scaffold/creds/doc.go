// Package creds resolves hosting-service credentials from an
// ordered chain of sources: global git configuration, then a
// per-user identity file, with an optional interactive prompt
// filling in a missing secret.
//
// The first source yielding a non-empty result wins. Sources that
// fail are treated as empty, and an entirely empty chain is not an
// error: the caller sends the creation request unauthenticated and
// lets the hosting service reject it if authentication is
// required.
package creds

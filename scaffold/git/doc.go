// Package git probes and mutates a local git working copy by
// shelling out to the git command line tool.
//
// All probes (HasRemote, CurrentBranch, HasTracking) treat command
// failures as absence rather than errors, so callers can skip the
// affected step instead of aborting. Mutations (AddRemote,
// SetTracking) return errors normally.
package git

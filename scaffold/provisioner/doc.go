// Package provisioner orchestrates remote repository creation for
// a freshly minted project. It optionally confirms with the user,
// resolves the target repository name and credentials, creates the
// repository through a hosting.Provider, and registers the result
// as a tracked remote of the local working copy.
//
// The main entry point is Run, which accepts a Config struct with
// all parameters for the workflow. The flow is strictly linear and
// performs at most one creation call per invocation; local git
// state is only mutated after remote creation succeeded.
package provisioner

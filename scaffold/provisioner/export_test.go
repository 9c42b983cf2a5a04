package provisioner

// Exported aliases for testing internal functions from
// the provisioner_test package.

// ResolveNameForTest exposes resolveName.
var ResolveNameForTest = resolveName

// DefaultSourcesForTest exposes defaultSources.
var DefaultSourcesForTest = defaultSources

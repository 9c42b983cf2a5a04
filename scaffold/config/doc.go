// Package config holds the provisioner's option surface and its
// YAML file loader. Precedence: defaults < YAML file < CLI flags
// (flags are applied by the binary).
package config

// Package config loads the SDK and CLI configuration from the environment,
// with an optional YAML file underneath for CLI use.
//
// Precedence, highest first: environment variables (AUTHKIT_*), the YAML
// config file, struct defaults. A .env file in the working directory is
// loaded once per process for twelve-factor style development setups.
package config

// Package config provides application configuration loading and validation.
//
// Configuration is assembled from two sources, in order of precedence:
//
//  1. Environment variables with the CRMKIT prefix (highest)
//  2. An optional YAML file (config.yaml, or CRMKIT_CONFIG_FILE)
//
// Defaults are declared on the struct tags so a zero-configuration start
// works out of the box for local use.
package config

// Package config provides configuration loading, merging, and validation
// facilities for the cyber-aware binaries.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for non-zero fields):
//  1. Command-line flags
//  2. Environment variables
//  3. .env file
//  4. JSON config file
//  5. Built-in defaults
//
// The main entry points are [GetClientConfig] for the terminal client and
// [GetProvisionConfig] for the schema provisioning tool.
package config

// Package commands provides the command-line interface for the xtea tool.
//
// It implements commands for:
//   - key generation
//   - encryption
//   - decryption
//
// The package handles command-line parsing and configuration validation through cobra.
package commands

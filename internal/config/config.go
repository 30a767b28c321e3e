// Package config holds the runtime configuration for the xtea tool.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config holds the flags and arguments shared by the encrypt and decrypt subcommands.
type Config struct {
	// Common flags
	Key      string `validate:"required,len=32,hexadecimal"` // hex encoded, so 16 bytes = 32 chars
	Rounds   int    `validate:"min=0"`
	Parallel int    `validate:"min=1"`
	Suffix   string `validate:"required"`
	Quiet    bool
	Delete   bool

	// Command-specific flags
	Decrypt bool

	// Positional arguments
	Files []string `validate:"min=1"`
}

// Validate validates the configuration against the struct tags.
func (c Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	return nil
}

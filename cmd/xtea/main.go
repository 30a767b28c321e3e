// Command xtea encrypts and decrypts files with the XTEA block cipher.
package main

import (
	"os"

	"github.com/codahale/xtea/internal/commands"
)

// version is set at build time.
var version = "dev"

func main() {
	if err := commands.Execute(version); err != nil {
		os.Exit(1)
	}
}

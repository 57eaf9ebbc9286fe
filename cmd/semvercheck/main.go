// Package main provides the CLI for semvercheck.
package main

import (
	"os"

	"github.com/obi1kenobi/semver-check-go/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

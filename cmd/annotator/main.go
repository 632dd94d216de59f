// Command annotator is a terminal client for an entity-linking annotation
// backend.
package main

import (
	"os"

	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(buildServices); err != nil {
		os.Exit(1)
	}
}

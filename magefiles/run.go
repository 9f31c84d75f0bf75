//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds and starts the server. LSD_CONFIG selects the config file.
func (Run) Server() error {
	mg.Deps(Build.Server)
	fmt.Println("Run server...")
	_, err := executeCmd("bin/lsd-thumbnail-server", withStream())
	return err
}

// Renders the testbed samples into ./samples without touching the database.
func (Run) Samples() error {
	mg.Deps(Build.Server)
	if err := os.MkdirAll("samples", 0o755); err != nil {
		return err
	}
	_, err := executeCmd("bin/lsd-thumbnail-server", withArgs("-samples", "samples"), withStream())
	return err
}

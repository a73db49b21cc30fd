//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the viewer with config/skyview.toml, or the file named by SKYVIEW_CONFIG.
func (Run) Viewer() error {
	config := os.Getenv("SKYVIEW_CONFIG")
	if config == "" {
		config = "config/skyview.toml"
	}
	fmt.Println("Run viewer...")
	if _, err := executeCmd("go", withArgs("run", ".", "-config", config), withStream()); err != nil {
		return err
	}
	return nil
}

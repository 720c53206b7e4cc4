// The main package for the explorer executable.
package main

import (
	"github.com/dannyfullextent/explorer/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}

// Command toolgen generates Go types and callable actions from a schema definition and a
// project file describing the backend clients.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

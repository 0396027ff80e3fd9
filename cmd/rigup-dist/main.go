// Command rigup-dist writes the files packaged alongside the binary: the man
// page and a completion script per shell.
package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/rigup/cmd/rigup"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <output-dir>\n", os.Args[0])
		os.Exit(1)
	}

	written, err := rigup.WriteArtifacts(rigup.NewRootCmd(), os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating release files: %v\n", err)
		os.Exit(1)
	}
	for _, path := range written {
		fmt.Println(path)
	}
}

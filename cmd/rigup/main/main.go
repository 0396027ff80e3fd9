package main

import (
	"context"
	"fmt"
	"os"

	"github.com/arthur-debert/rigup/cmd/rigup"
	"github.com/arthur-debert/rigup/pkg/ui/output/styles"
)

func main() {
	rootCmd := rigup.NewRootCmd()
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.Render("Error", rigup.ErrorLine(err)))
	}
	os.Exit(rigup.ExitCode(err))
}

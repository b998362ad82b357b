package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dictus/cmd/dictus"
	"github.com/arthur-debert/dictus/pkg/display"
)

func main() {
	rootCmd := dictus.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		r, rerr := display.NewRenderer(os.Stderr, display.DetectFormat(os.Stderr))
		if rerr != nil || r.RenderError(err) != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// Command storefront serves the business landing page with its booking and
// contact forms.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Embedded zone data so INQUIRY_TIMEZONE works on minimal images.
	_ "time/tzdata"
)

// Set at build time.
var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Landing page, booking and contact forms for a small business",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		checkCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

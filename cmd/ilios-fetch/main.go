// Command ilios-fetch lists and looks up entity records from an Ilios
// API server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stopfstedt/local-iliosapiclient/pkg/logging"
)

var version = "dev"

func main() {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "ilios-fetch",
		Short: "Fetch entity records from an Ilios API server",
		Long: `ilios-fetch pages through Ilios API result sets and performs batched
ID lookups, printing the fetched records as JSON. The supplied token is
checked locally for well-formedness and expiry before any request.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logging.Config{
				Level:  logging.LogLevel(logLevel),
				Pretty: true,
				Output: os.Stderr,
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newGetCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

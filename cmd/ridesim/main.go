// Command ridesim runs ride-pooling dispatch simulations from a YAML
// scenario file. Structured as a cobra root command with run/sweep
// subcommands, following the teacher pack's tidbyt-gtfs/cmd CLI layout
// (a root command plus one file per subcommand) rather than the
// teacher's own flag-based main.go.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "ridesim",
	Short:        "Ride-pooling dispatch simulator",
	Long:         "Simulates a fleet of ride-pooling vehicles dispatching against a stream of transportation requests.",
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(runCmd, sweepCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// Smpctl sends SMP (Serial Management Protocol) functions to SAS expanders.
//
// It issues DISCOVER, REPORT GENERAL, REPORT BROADCAST, PHY TEST FUNCTION
// and CONFIGURE GENERAL requests through the Linux bsg driver and decodes
// the responses. Expander targets can be named on the command line, through
// the SMPCTL_DEVICE and SMPCTL_SAS_ADDR environment variables, or in the
// configuration file.
//
// Usage:
//
//	smpctl [command] [flags]
//
// The exit status is the SMP function result code reported by the expander
// (0 on success), or a category above 90 for local failures.
// See 'smpctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/smpctl/internal/version"
)

// exitStatus carries the expander-reported result code (or a local failure
// category) out of RunE handlers to the final os.Exit.
var exitStatus int

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if exitStatus == 0 {
			exitStatus = 1
		}
	}
	os.Exit(exitStatus)
}

var rootCmd = &cobra.Command{
	Use:   "smpctl",
	Short: "SAS Expander Management Utility",
	Long: `Send SMP functions to SAS expanders through the Linux bsg driver.

Provides expander discovery, phy status reporting, broadcast event
reporting, phy test pattern control and general expander configuration.

Targets resolve from flags, then the SMPCTL_DEVICE and SMPCTL_SAS_ADDR
environment variables, then the default expander in the configuration
file.`,
	Version: version.Version,
	Example: `  # One-line summary of every expander phy
  smpctl discover --device /dev/bsg/expander-0:0

  # Full record for one phy
  smpctl discover --device /dev/bsg/expander-0:0 --phy 4

  # Expander-wide attributes
  smpctl report-general --device /dev/bsg/expander-0:0

  # Live phy monitor
  smpctl watch --device /dev/bsg/expander-0:0`,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("smpctl %s (commit: %s)\n", version.Version, version.Commit)
	},
}

package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/LeJamon/goMarketd/internal/core/amendment"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display version information for goMarketd, the Go version and the supported amendments.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "goMarketd version %s\n", rootCmd.Version)
		fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
		fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Fprintln(out, "Amendments:")
		for _, f := range amendment.AllFeatures() {
			fmt.Fprintf(out, "  %-28s default=%v\n", f.Name, f.IsDefaultYes())
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

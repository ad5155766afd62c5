package cmd

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the dsai version and build details",
	Run: func(cmd *cobra.Command, args []string) {
		info, _ := debug.ReadBuildInfo()
		printVersion(cmd.OutOrStdout(), info)
	},
}

// resolveVersion prefers the -ldflags value, then the module version
// recorded by `go install`.
func resolveVersion(info *debug.BuildInfo) string {
	if version != "(devel)" || info == nil {
		return version
	}
	if v := info.Main.Version; v != "" {
		return v
	}
	return version
}

func printVersion(w io.Writer, info *debug.BuildInfo) {
	fmt.Fprintln(w, "dsai", resolveVersion(info))
	fmt.Fprintf(w, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if info == nil {
		return
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			fmt.Fprintf(w, "  commit:  %s\n", s.Value)
		}
	}
}

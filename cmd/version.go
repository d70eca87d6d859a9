package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot-cli/pkg/ui"
)

// Set at build time with -ldflags "-X github.com/kamal-hamza/shot-cli/cmd.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the shot version",
	Args:  cobra.NoArgs,
	Run:   runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
}

func runVersion(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	version, commit := buildVersion()

	if versionShort {
		fmt.Fprintln(out, version)
		return
	}

	fmt.Fprintln(out, ui.FormatTitle("shot"))
	fmt.Fprintln(out, ui.RenderKeyValue("Version", version))
	fmt.Fprintln(out, ui.RenderKeyValue("Commit", commit))
	fmt.Fprintln(out, ui.RenderKeyValue("Built", BuildDate))
	fmt.Fprintln(out, ui.RenderKeyValue("Go", runtime.Version()+" "+runtime.GOOS+"/"+runtime.GOARCH))
}

// buildVersion falls back to the module info embedded by `go install`
// when no ldflags were given.
func buildVersion() (string, string) {
	version, commit := Version, GitCommit
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version, commit
	}
	if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
	if commit == "unknown" {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 12 {
				commit = s.Value[:12]
			}
		}
	}
	return version, commit
}

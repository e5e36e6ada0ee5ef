package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roasbeef/actorkit/internal/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  `Display the version, commit hash, and build metadata for actorkitd.`,
	Run:   runVersion,
}

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Printf("actorkitd version %s", build.Version())

	if build.Commit != "" {
		fmt.Printf(" commit=%s", build.Commit)
	}
	if build.GoVersion != "" {
		fmt.Printf(" go=%s", build.GoVersion)
	}
	if tags := build.Tags(); len(tags) > 0 {
		fmt.Printf(" tags=%s", build.RawTags)
	}

	fmt.Println()
}

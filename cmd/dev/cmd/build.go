package cmd

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/gophertribe/devtool/build"
)

const (
	binary        = "dist/colorsense"
	mainPackage   = "./cmd/colorsense"
	configPackage = "github.com/mklimuk/colorsense/config"
	buildImage    = "gophertribe/gobuild:1.25-bookworm"
)

// boards maps a shorthand to the platform the cli is usually deployed on.
var boards = map[string][2]string{
	"nanopi": {"linux", "arm"},
	"rpi":    {"linux", "arm64"},
}

func BuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the colorsense cli",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			goos, _ := flags.GetString("os")
			arch, _ := flags.GetString("arch")
			version, _ := flags.GetString("version")
			board, _ := flags.GetString("board")
			if board != "" {
				platform, ok := boards[board]
				if !ok {
					return fmt.Errorf("unknown board %q", board)
				}
				goos, arch = platform[0], platform[1]
			}
			// hid needs cgo so foreign targets go through the build container
			if goos == runtime.GOOS && arch == runtime.GOARCH {
				slog.Info("building", "output", binary, "version", version)
				return build.GoBuild(binary, mainPackage, build.GoBuildOpts{
					Version:       version,
					InjectVersion: true,
					ConfigPackage: configPackage,
					EnableCgo:     true,
					Arch:          arch,
					OS:            goos,
				})
			}
			noCache, err := flags.GetBool("no-cache")
			if err != nil {
				return fmt.Errorf("could not get no-cache flag: %w", err)
			}
			slog.Info("building in container", "os", goos, "arch", arch)
			return build.Docker(cmd.Context(), fmt.Sprintf("./dev-%s-%s", goos, arch),
				[]string{"build", "--version", version, "--os", goos, "--arch", arch},
				build.DockerBuildOpts{NoCache: noCache, Image: buildImage})
		},
	}
	cmd.Flags().Bool("no-cache", false, "do not use cache when building in a container")
	cmd.Flags().String("version", "latest", "version of the cli")
	cmd.Flags().String("os", runtime.GOOS, "os to build for")
	cmd.Flags().String("arch", runtime.GOARCH, "arch to build for")
	cmd.Flags().String("board", "", "build for a known board (nanopi, rpi)")
	return cmd
}

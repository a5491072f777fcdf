package cli

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/deb822/internal/logging"
)

// versionInfo is the JSON shape of `deb822 version --json`.
type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Built     string `json:"built"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	var asJSON, short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, build date and Go toolchain of deb822.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			v := versionInfo{
				Version:   info.Version,
				Commit:    info.Commit,
				Built:     info.Date,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}

			switch {
			case asJSON:
				return writeJSON(out, v, false)
			case short:
				_, err := fmt.Fprintln(out, v.Version)
				return err
			}

			logger := log.NewWithOptions(out, log.Options{Level: log.InfoLevel})
			logger.Info("deb822",
				logging.FieldVersion, v.Version,
				logging.FieldCommit, v.Commit,
				logging.FieldBuilt, v.Built,
				"go", v.GoVersion,
				"platform", v.Platform,
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print build information as JSON")
	cmd.Flags().BoolVar(&short, "short", false, "print only the version")
	cmd.MarkFlagsMutuallyExclusive("json", "short")

	return cmd
}

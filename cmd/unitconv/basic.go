package main

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/unitconv/pkg/client"
	"github.com/charlie0129/unitconv/pkg/config"
	"github.com/charlie0129/unitconv/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", version.Version, version.GitCommit)

			daemonVersion, err := apiClient.GetVersion()
			switch {
			case err == nil:
				if daemonVersion != version.Version {
					logrus.WithFields(logrus.Fields{
						"clientVersion": version.Version,
						"daemonVersion": daemonVersion,
					}).Warn("Version mismatch between client and daemon. Restart the daemon with the same binary.")
				}
				fmt.Fprintf(out, "daemon: %s\n", daemonVersion)
			case errors.Is(err, client.ErrDaemonNotRunning):
				fmt.Fprintln(out, "daemon: not running")
			default:
				logrus.Debugf("failed to get daemon version: %v", err)
			}
		},
	}
}

func NewPrecisionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "precision [decimal places]",
		Short:   "Set how many decimal places results are shown with",
		GroupID: gBasic,
		Long: fmt.Sprintf(`Set how many decimal places results are shown with.

This is a number from 0 to %d. The setting is saved in the daemon's config file.`, config.MaxPrecision),
		RunE: func(_ *cobra.Command, args []string) error {
			p, err := parseIntArg(args, "precision")
			if err != nil {
				return err
			}

			ret, err := apiClient.SetPrecision(p)
			if err != nil {
				return fmt.Errorf("failed to set precision: %v", err)
			}

			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}

			logrus.Infof("successfully set precision to %d", p)

			return nil
		},
	}
}

func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   "Print the daemon configuration",
		GroupID: gAdvanced,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := apiClient.GetConfig()
			if err != nil {
				return fmt.Errorf("failed to get config: %w", err)
			}

			c := config.NewFileFromConfig(conf, "")
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, bold("Configuration:"))
			fmt.Fprintf(out, "  Precision: %s\n", bold("%d", c.Precision()))
			fmt.Fprintf(out, "  History size: %s\n", bold("%d", c.HistorySize()))
			fmt.Fprintf(out, "  Allow non-root users to access the daemon: %s\n", bool2Text(c.AllowNonRootAccess()))
			addr := c.HTTPAddr()
			if addr == "" {
				addr = "(disabled)"
			}
			fmt.Fprintf(out, "  HTTP address: %s\n", bold("%s", addr))
			maxAge := "(forever)"
			if d := c.HistoryMaxAge(); d > 0 {
				maxAge = d.String()
			}
			fmt.Fprintf(out, "  Keep history for: %s, pruned %s\n", bold("%s", maxAge), bold("%s", c.PruneSchedule()))
			return nil
		},
	}
}

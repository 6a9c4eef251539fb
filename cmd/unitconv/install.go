package main

import (
	"fmt"
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/unitconv/pkg/config"
	daemonutils "github.com/charlie0129/unitconv/pkg/utils/daemon"
)

func init() {
	commandGroups = append(commandGroups, gInstallation)
}

// NewInstallCommand .
func NewInstallCommand() *cobra.Command {
	allowNonRootAccess := false

	cmd := &cobra.Command{
		Use:     "install",
		Short:   "Install unitconv daemon as a systemd service",
		GroupID: gInstallation,
		Long: `Install unitconv daemon as a systemd service (system-wide).

This makes the daemon run in the background and start on boot. You must run
this command as root.

By default only root may talk to the daemon. Use --allow-non-root-access to let
other users convert through it without sudo.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			absConfig, err := filepath.Abs(configPath)
			if err != nil {
				return err
			}
			conf, err := config.NewFile(absConfig)
			if err != nil {
				return err
			}

			conf.SetAllowNonRootAccess(allowNonRootAccess)
			if allowNonRootAccess {
				logrus.Info("non-root users are allowed to access the unitconv daemon.")
			} else {
				logrus.Info("only root user is allowed to access the unitconv daemon.")
			}

			err = daemonutils.Install(absConfig, unixSocketPath)
			if err != nil {
				if os.Geteuid() != 0 {
					logrus.Errorf("you must run this command as root")
				}
				return fmt.Errorf("failed to install daemon: %w", err)
			}

			err = conf.Save()
			if err != nil {
				return pkgerrors.Wrapf(err, "failed to save config")
			}

			logrus.Infof("installation succeeded")

			exePath, _ := os.Executable()
			cmd.Printf("systemd will run the current binary (%s). If you move or delete it, run `unitconv install' again.\n", exePath)

			return nil
		},
	}

	cmd.Flags().BoolVar(&allowNonRootAccess, "allow-non-root-access", false, "Allow non-root users to access the unitconv daemon.")

	return cmd
}

// NewUninstallCommand .
func NewUninstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "uninstall",
		Short:   "Uninstall unitconv daemon service",
		GroupID: gInstallation,
		Long: `Stop the unitconv daemon and remove its systemd service.

You must run this command as root.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := daemonutils.Uninstall()
			if err != nil {
				if os.Geteuid() != 0 {
					logrus.Errorf("you must run this command as root")
				}
				return fmt.Errorf("failed to uninstall daemon: %w", err)
			}

			cmd.Println("successfully uninstalled")
			cmd.Printf("Your config is kept in %s. Remove it by hand for a complete uninstall.\n", configPath)

			return nil
		},
	}
}

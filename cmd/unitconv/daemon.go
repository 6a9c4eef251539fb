package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/unitconv/pkg/daemon"
	"github.com/charlie0129/unitconv/pkg/version"
)

var (
	// alwaysAllowNonRootAccess indicates whether to always allow non-root users to access the daemon.
	alwaysAllowNonRootAccess = false
	httpAddr                 = ""
)

// NewDaemonCommand .
func NewDaemonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "daemon",
		Hidden:  true,
		Short:   "Run unitconv daemon in the foreground",
		GroupID: gAdvanced,
		RunE: func(_ *cobra.Command, _ []string) error {
			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("unitconv daemon starting")
			return daemon.Run(configPath, unixSocketPath, httpAddr, alwaysAllowNonRootAccess)
		},
	}

	f := cmd.Flags()

	f.BoolVar(&alwaysAllowNonRootAccess, "always-allow-non-root-access", false,
		"Always allow non-root users to access the daemon.")
	f.StringVar(&httpAddr, "http-addr", "",
		"Also serve the API over TCP on this address, e.g. 127.0.0.1:8077. Overrides httpAddr in the config file.")

	return cmd
}

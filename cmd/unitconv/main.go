package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/charlie0129/unitconv/pkg/client"
)

var (
	logLevel       = "info"
	unixSocketPath = "/tmp/unitconv.sock"
	daemonURL      = ""
	configPath     = "/etc/unitconv.json"

	apiClient *client.Client
)

var (
	gBasic        = "Basic:"
	gAdvanced     = "Advanced:"
	gInstallation = "Installation:"
	commandGroups = []string{
		gBasic,
		gAdvanced,
	}
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func newAPIClient() *client.Client {
	if daemonURL != "" {
		return client.NewHTTPClient(daemonURL)
	}
	return client.NewClient(unixSocketPath)
}

func handleCmdError(err error) {
	if errors.Is(err, client.ErrDaemonNotRunning) {
		fmt.Fprintln(os.Stderr, "\nError: unitconv daemon is not running")
		fmt.Fprintln(os.Stderr, "  - Start it with 'unitconv daemon'")
		fmt.Fprintln(os.Stderr, "  - Or pass '--local' to convert without the daemon")
	} else if errors.Is(err, client.ErrPermissionDenied) {
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Try running the command again with 'sudo'")
		fmt.Fprintln(os.Stderr, "  - Or restart the daemon with the '--always-allow-non-root-access' flag to grant permissions to your user")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unitconv",
		Short: "unitconv converts values between units of measurement",
		Long: `unitconv converts values between units of measurement.

Pick a category (Length, Mass, Temperature, Volume, Time, Area, Speed), a value
and two units. Units can be given by their identifier ("kilometer"), their
label ("Kilometer (km)") or as expressions ("meter/second", "ft^2").`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			err := setupLogger()
			if err != nil {
				return err
			}

			apiClient = newAPIClient()
			return nil
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")
	globalFlags.StringVar(&unixSocketPath, "daemon-socket", unixSocketPath, "unitconv daemon unix socket path")
	globalFlags.StringVar(&daemonURL, "daemon-url", daemonURL, "unitconv daemon HTTP address, e.g. http://127.0.0.1:8077 (overrides --daemon-socket)")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewDaemonCommand(),
		NewVersionCommand(),
		NewConvertCommand(),
		NewCategoriesCommand(),
		NewUnitsCommand(),
		NewHistoryCommand(),
		NewPrecisionCommand(),
		NewConfigCommand(),
		NewWatchCommand(),
		NewInstallCommand(),
		NewUninstallCommand(),
	)

	return cmd
}

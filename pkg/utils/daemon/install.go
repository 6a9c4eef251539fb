package daemon

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	unitPath = "/etc/systemd/system/unitconv.service"

	// runSystemctl is replaced in tests.
	runSystemctl = func(args ...string) error {
		out, err := exec.Command("systemctl", args...).CombinedOutput()
		if err != nil {
			return fmt.Errorf("systemctl %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
		}
		return nil
	}
)

const unitTemplate = `[Unit]
Description=unitconv unit conversion daemon
After=network.target

[Service]
Type=simple
ExecStart=/path/to/unitconv daemon --config={{config}} --daemon-socket={{socket}}
ExecReload=/bin/kill -HUP $MAINPID
Restart=on-failure

[Install]
WantedBy=multi-user.target
`

// renderUnit fills the service template for the given binary.
func renderUnit(exePath, configPath, socketPath string) string {
	return strings.NewReplacer(
		"/path/to/unitconv", exePath,
		"{{config}}", configPath,
		"{{socket}}", socketPath,
	).Replace(unitTemplate)
}

// Install writes a systemd service running the current executable as the
// daemon, then enables and starts it.
func Install(configPath, socketPath string) error {
	// Get the path to the current executable
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get the path to the current executable: %w", err)
	}
	exePath, err = filepath.Abs(exePath)
	if err != nil {
		return fmt.Errorf("failed to get the absolute path to the current executable: %w", err)
	}

	err = os.Chmod(exePath, 0755)
	if err != nil {
		return fmt.Errorf("failed to chmod the current executable to 0755: %w", err)
	}

	logrus.Infof("current executable path: %s", exePath)

	return install(exePath, configPath, socketPath)
}

func install(exePath, configPath, socketPath string) error {
	dir := filepath.Dir(unitPath)
	logrus.Infof("writing systemd service to %s", dir)

	// mkdir -p
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	// warn if the file already exists
	_, err = os.Stat(unitPath)
	if err == nil {
		logrus.Warnf("%s already exists, overwriting", unitPath)
	}

	err = os.WriteFile(unitPath, []byte(renderUnit(exePath, configPath, socketPath)), 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", unitPath, err)
	}

	logrus.Infof("starting unitconv")

	err = runSystemctl("daemon-reload")
	if err != nil {
		return err
	}
	return runSystemctl("enable", "--now", filepath.Base(unitPath))
}

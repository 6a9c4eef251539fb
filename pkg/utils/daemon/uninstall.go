package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Uninstall stops and removes the systemd service written by Install.
func Uninstall() error {
	logrus.Infof("stopping unitconv")

	err := runSystemctl("disable", "--now", filepath.Base(unitPath))
	if err != nil {
		return fmt.Errorf("failed to stop service: %w. Are you root?", err)
	}

	logrus.Infof("removing systemd service")

	// if the file doesn't exist, we don't need to remove it
	_, err = os.Stat(unitPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", unitPath, err)
	}

	err = os.Remove(unitPath)
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w. Are you root?", unitPath, err)
	}

	return runSystemctl("daemon-reload")
}

//go:build !windows && !darwin

package platform

import (
	"os/exec"
	"strings"
)

func detectSystemTheme() string {
	out, err := exec.Command("gsettings", "get", "org.gnome.desktop.interface", "color-scheme").Output()
	if err != nil {
		return "light"
	}
	if strings.Contains(string(out), "dark") {
		return "dark"
	}
	return "light"
}

//go:build darwin

package platform

import (
	"os/exec"
	"strings"
)

func detectSystemTheme() string {
	// The key is absent entirely in light mode, so a non-zero exit
	// also means light.
	out, err := exec.Command("defaults", "read", "-g", "AppleInterfaceStyle").Output()
	if err != nil {
		return "light"
	}
	if strings.TrimSpace(string(out)) == "Dark" {
		return "dark"
	}
	return "light"
}

// Package platform wraps OS integrations: system theme detection,
// revealing paths in the file manager, opening a browser, and
// terminal taskbar progress.
package platform

import (
	"sync"
	"time"
)

const themeCacheTTL = 2 * time.Second

var themeCache struct {
	mu      sync.Mutex
	value   string
	fetched time.Time
}

// SystemTheme reports the OS appearance as "light" or "dark". The
// probe can be slow (registry read, subprocess), so results are
// cached briefly. When detection fails the answer is "light".
func SystemTheme() string {
	themeCache.mu.Lock()
	defer themeCache.mu.Unlock()

	if time.Since(themeCache.fetched) < themeCacheTTL && themeCache.value != "" {
		return themeCache.value
	}
	themeCache.value = detectSystemTheme()
	themeCache.fetched = time.Now()
	return themeCache.value
}

// Resolve maps a theme setting to a concrete theme: "auto" follows
// the OS, anything else passes through.
func Resolve(setting string) string {
	if setting == "auto" || setting == "" {
		return SystemTheme()
	}
	return setting
}

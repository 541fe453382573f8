package web

import (
	"os/exec"
	"runtime"
)

// OpenBrowser points the default browser at the UI. Failures are non-fatal;
// the caller just logs them.
func OpenBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

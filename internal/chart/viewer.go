package chart

import (
	"fmt"
	"os/exec"
	"runtime"
)

// execCommand allows mocking in tests.
var execCommand = exec.Command

// Show opens path in the platform's default image viewer and waits for the
// opener to return.
func Show(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = execCommand("xdg-open", path)
	case "windows":
		cmd = execCommand("rundll32", "url.dll,FileProtocolHandler", path)
	case "darwin":
		cmd = execCommand("open", "-W", path)
	default:
		return fmt.Errorf("don't know how to open images on %s", runtime.GOOS)
	}

	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to open %s: %w: %s", path, err, out)
	}
	return nil
}

package utils

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ValidateProbeDependency checks that the ffprobe binary can be found.
// An empty binary means "ffprobe" on PATH.
func ValidateProbeDependency(binary string) error {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}

	if _, err := exec.LookPath(binary); err != nil {
		return fmt.Errorf("%s not found in PATH. %s", binary, getInstallationInstructions())
	}

	return nil
}

// getInstallationInstructions returns platform-specific installation instructions
func getInstallationInstructions() string {
	switch runtime.GOOS {
	case "darwin":
		return "Install with: brew install ffmpeg"
	case "linux":
		return "Install with: apt-get install ffmpeg (Ubuntu/Debian) or yum install ffmpeg (CentOS/RHEL)"
	case "windows":
		return "Download from https://ffmpeg.org/download.html and add to PATH"
	default:
		return "Download from https://ffmpeg.org/download.html"
	}
}

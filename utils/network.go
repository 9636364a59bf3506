package utils

import (
	"fmt"
	"path/filepath"
	"strings"
)

// networkPrefixes are common mount points for network shares
var networkPrefixes = []string{
	"/mnt/",     // Linux NFS/SMB mounts
	"/media/",   // Linux removable/network media
	"/net/",     // autofs
	"/Volumes/", // macOS network volumes
}

// networkIndicators hint at a network filesystem somewhere in the path
var networkIndicators = []string{"nfs", "cifs", "smb", "gvfs", "webdav", "sftp"}

// IsNetworkDrive detects if a file path is on a network-mounted drive
func IsNetworkDrive(filePath string) bool {
	// Check Windows UNC paths first, before converting to absolute path
	if strings.HasPrefix(filePath, "//") || strings.HasPrefix(filePath, `\\`) {
		return true
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return false
	}

	for _, prefix := range networkPrefixes {
		if strings.HasPrefix(absPath, prefix) {
			return true
		}
	}

	lowerPath := strings.ToLower(absPath)
	for _, indicator := range networkIndicators {
		if strings.Contains(lowerPath, indicator) {
			return true
		}
	}

	return false
}

// NetworkWorkerHint returns advice when many probes would hit a network share
// at once, or "" when the worker count is fine for the input.
func NetworkWorkerHint(input string, workers int) string {
	if workers <= 1 || !IsNetworkDrive(input) {
		return ""
	}
	return fmt.Sprintf("%s looks like a network mount; %d parallel probes may be slower than a few, try --workers 2", input, workers)
}

package video

import (
	"path/filepath"
	"slices"
	"strings"
)

// videoExtensions is the allow-list of file extensions picked up by a scan
var videoExtensions = []string{".mp4", ".mkv", ".avi", ".mov", ".wmv", ".webm", ".flv", ".mpg", ".m4v", ".ts"}

// IsVideoFile checks if the given file extension is one of known video file extensions
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path)) // handle cases where extension is upper case
	return slices.Contains(videoExtensions, ext)
}

// Stem returns the file name without directory and extension
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

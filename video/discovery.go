package video

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ErrNotVideo is returned when a single-file input is not a video file
var ErrNotVideo = errors.New("not a video file")

// FindVideoFiles returns the absolute, sorted paths of all video files under root.
// A root that is itself a video file yields just that file.
//
// Entries below root that cannot be read are passed to skip (when non-nil) and
// left out; only a failure on root itself is returned as an error.
func FindVideoFiles(root string, skip func(path string, err error)) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", root, err)
	}

	if !fi.IsDir() {
		if !IsVideoFile(abs) {
			return nil, fmt.Errorf("%s: %w", root, ErrNotVideo)
		}
		return []string{abs}, nil
	}

	files, err := findVideoFilesWithWalkDir(abs, skip)
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func findVideoFilesWithWalkDir(directory string, skip func(path string, err error)) ([]string, error) {
	var files []string

	err := filepath.WalkDir(directory, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == directory {
				return err
			}
			if skip != nil {
				skip(path, err)
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		if !IsVideoFile(path) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory %s: %w", directory, err)
	}

	return files, nil
}

package common

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// The buffer size used when hashing image files.
const hashBufferSize = 65536

func FileExists(filePath string) (bool, error) {
	info, err := os.Stat(filePath)
	if err == nil {
		return !info.IsDir(), nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Checks if the given filePath matches at least one of the given patterns.
func FilePathMatchesPattern(filePath string, patterns ...string) (bool, error) {
	if patterns == nil {
		return true, nil
	}
	for _, pattern := range patterns {
		isMatch, err := doublestar.Match(filepath.ToSlash(pattern), filepath.ToSlash(filePath))
		if err != nil {
			return false, err
		}
		if isMatch {
			return true, nil
		}
	}
	return false, nil
}

// Searches all files below rootPath which match one of the patterns. The result is sorted and free of duplicates.
func SearchFiles(rootPath string, matchPatterns []string) ([]string, error) {
	for _, pattern := range matchPatterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, fmt.Errorf("invalid file pattern '%s'", pattern)
		}
	}
	matchedFiles := []string{}
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		// Continue on folders
		if d.IsDir() {
			return nil
		}
		// Make the path relative to the root so patterns stay independent of it
		relPath, err := filepath.Rel(rootPath, path)
		if err != nil {
			return err
		}
		isMatch, err := FilePathMatchesPattern(relPath, matchPatterns...)
		if err != nil {
			return err
		}
		if isMatch {
			matchedFiles = append(matchedFiles, path)
		}
		return nil
	})
	slices.Sort(matchedFiles)
	return slices.Compact(matchedFiles), err
}

// Calculates the hex encoded sha256 digest of the given file.
func FileSha256(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed opening file '%s': %w", filePath, err)
	}
	defer file.Close()
	hash := sha256.New()
	if _, err := io.CopyBuffer(hash, file, make([]byte, hashBufferSize)); err != nil {
		return "", fmt.Errorf("failed hashing file '%s': %w", filePath, err)
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

var invalidFileNameCharsRegex = regexp.MustCompile(`[^a-zA-Z0-9_.\-]+`)

// Converts the given value into something that is safe to use as a file name.
func SanitizeFileName(value string) string {
	sanitized := invalidFileNameCharsRegex.ReplaceAllString(value, "_")
	if sanitized == "" || sanitized == "." || sanitized == ".." {
		return "_"
	}
	return sanitized
}

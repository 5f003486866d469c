package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adhocore/jsonc"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"
	"github.com/roemer/fwcatalog/pkg/common"
)

// The file that is read when no patterns are configured.
const DefaultInputFile = "input.json"

// A source which reads releases from json, jsonc or yaml files (eg. exports from the support portal).
type FileSource struct {
	*sourceBase
}

func NewFileSource(settings *common.SourceSettings) common.ISource {
	newSource := &FileSource{
		sourceBase: newSourceBase(common.SOURCE_TYPE_FILE, settings),
	}
	newSource.impl = newSource
	return newSource
}

func (s *FileSource) GetReleases(ctx context.Context) ([]*common.RawRelease, error) {
	patterns := []string{DefaultInputFile}
	if s.settings.FileSourceSettings != nil && len(s.settings.FileSourceSettings.Patterns) > 0 {
		patterns = s.settings.FileSourceSettings.Patterns
	}
	filePaths, err := resolveFilePatterns(patterns)
	if err != nil {
		return nil, err
	}
	releases := []*common.RawRelease{}
	for _, filePath := range filePaths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.logger.Debug(fmt.Sprintf("Reading releases from '%s'", filePath))
		fileReleases, err := ReadReleaseFile(filePath)
		if err != nil {
			return nil, err
		}
		releases = append(releases, fileReleases...)
	}
	return releases, nil
}

// Reads the list of releases from the given file. Yaml is used for .yaml/.yml files, json with comments otherwise.
func ReadReleaseFile(filePath string) ([]*common.RawRelease, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed reading file '%s': %w", filePath, err)
	}
	return parseReleases(content, filepath.Ext(filePath))
}

func parseReleases(content []byte, ext string) ([]*common.RawRelease, error) {
	releases := []*common.RawRelease{}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &releases); err != nil {
			return nil, fmt.Errorf("failed parsing yaml releases: %w", err)
		}
	default:
		// Exports might contain comments, so convert it to json first
		j := jsonc.New()
		strippedJson := j.StripS(string(content))
		if err := json.Unmarshal([]byte(strippedJson), &releases); err != nil {
			return nil, fmt.Errorf("failed parsing json releases: %w", err)
		}
	}
	return releases, nil
}

// Resolves the given patterns into a sorted list of files. Patterns without glob characters must exist.
func resolveFilePatterns(patterns []string) ([]string, error) {
	filePaths := []string{}
	for _, pattern := range patterns {
		base, globPattern := doublestar.SplitPattern(filepath.ToSlash(pattern))
		if !strings.ContainsAny(globPattern, "*?[{") {
			if exists, err := common.FileExists(pattern); err != nil {
				return nil, err
			} else if !exists {
				return nil, fmt.Errorf("file '%s' not found", pattern)
			}
			filePaths = append(filePaths, pattern)
			continue
		}
		foundFiles, err := common.SearchFiles(filepath.FromSlash(base), []string{globPattern})
		if err != nil {
			return nil, err
		}
		if len(foundFiles) == 0 {
			return nil, fmt.Errorf("no files found for pattern '%s'", pattern)
		}
		filePaths = append(filePaths, foundFiles...)
	}
	return filePaths, nil
}

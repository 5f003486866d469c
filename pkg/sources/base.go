package sources

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/roemer/fwcatalog/pkg/common"
	"github.com/roemer/gover"
)

type sourceBase struct {
	sourceType common.SourceType
	logger     *slog.Logger
	impl       common.ISource
	settings   *common.SourceSettings
}

func newSourceBase(sourceType common.SourceType, settings *common.SourceSettings) *sourceBase {
	logger := settings.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &sourceBase{
		sourceType: sourceType,
		logger:     logger.With(slog.String("source", sourceIdOrType(settings.Id, sourceType))),
		settings:   settings,
	}
}

func GetSource(sourceType common.SourceType, settings *common.SourceSettings) (common.ISource, error) {
	switch sourceType {
	case common.SOURCE_TYPE_ARTIFACTORY:
		return NewArtifactorySource(settings), nil
	case common.SOURCE_TYPE_FILE:
		return NewFileSource(settings), nil
	case common.SOURCE_TYPE_GITLAB_PACKAGES:
		return NewGitLabPackagesSource(settings), nil
	case common.SOURCE_TYPE_PANOS:
		return NewPanosSource(settings), nil
	}
	return nil, fmt.Errorf("no source defined for '%s'", sourceType)
}

func (s *sourceBase) Id() string {
	return sourceIdOrType(s.settings.Id, s.sourceType)
}

func (s *sourceBase) Type() common.SourceType {
	return s.sourceType
}

func (s *sourceBase) FetchReleases(ctx context.Context) ([]*common.RawRelease, error) {
	// Setup everything for the filters
	ignoreNonMatching := false
	if s.settings.IgnoreNonMatching != nil {
		ignoreNonMatching = *s.settings.IgnoreNonMatching
	}
	var fileNameRegex, extractVersionRegex, versionRegex *regexp.Regexp
	var err error
	if s.settings.FileNamePattern != "" {
		if fileNameRegex, err = regexp.Compile(s.settings.FileNamePattern); err != nil {
			return nil, fmt.Errorf("failed parsing the 'fileNamePattern' regexp '%s': %w", s.settings.FileNamePattern, err)
		}
	}
	if s.settings.ExtractVersion != "" {
		if extractVersionRegex, err = regexp.Compile(s.settings.ExtractVersion); err != nil {
			return nil, fmt.Errorf("failed parsing the 'extractVersion' regexp '%s': %w", s.settings.ExtractVersion, err)
		}
		if extractVersionRegex.NumSubexp() < 1 {
			return nil, fmt.Errorf("the 'extractVersion' regexp '%s' needs a capture group", s.settings.ExtractVersion)
		}
	}
	if s.settings.Versioning != "" {
		if versionRegex, err = regexp.Compile(s.settings.Versioning); err != nil {
			return nil, fmt.Errorf("failed parsing the 'versioning' regexp '%s': %w", s.settings.Versioning, err)
		}
	}

	// Try get releases from the cache or look them up from remote
	var rawReleases []*common.RawRelease = nil
	cache := s.settings.Cache
	cacheIdentifier := s.Id()
	if cache != nil {
		rawReleases, err = cache.Get(s.sourceType, cacheIdentifier)
		if err != nil {
			return nil, err
		}
	}
	if rawReleases != nil {
		s.logger.Debug("Returned releases from cache")
	} else {
		s.logger.Debug("Lookup releases from source")
		rawReleases, err = s.impl.GetReleases(ctx)
		if err != nil {
			return nil, err
		}
		if cache != nil {
			if err := cache.Set(s.sourceType, cacheIdentifier, rawReleases); err != nil {
				return nil, err
			}
		}
	}

	// Apply the filters
	availableReleases := []*common.RawRelease{}
	for _, release := range rawReleases {
		if release.Platform == "" {
			release.Platform = s.settings.Platform
		}
		if fileNameRegex != nil && !fileNameRegex.MatchString(release.FileName) {
			s.logger.Debug(fmt.Sprintf("Ignoring file not matching the file name pattern: %s", release.FileName))
			continue
		}
		// Extract the version number from the file name if needed
		if extractVersionRegex != nil {
			m := extractVersionRegex.FindStringSubmatch(release.FileName)
			if m == nil {
				if ignoreNonMatching {
					continue
				}
				return nil, fmt.Errorf("could not extract version from '%s'", release.FileName)
			}
			release.VersionNumber = m[1]
		}
		if versionRegex != nil {
			if _, err := gover.ParseVersionFromRegex(release.VersionNumber, versionRegex); err != nil {
				if errors.Is(err, gover.ErrNoMatch) && ignoreNonMatching {
					s.logger.Debug(fmt.Sprintf("Ignoring non matching version: %s", release.VersionNumber))
					continue
				}
				return nil, fmt.Errorf("failed parsing the version from '%s': %w", release.VersionNumber, err)
			}
		}
		if release.Platform == "" {
			return nil, fmt.Errorf("no platform for release '%s'", release.VersionNumber)
		}
		availableReleases = append(availableReleases, release)
	}

	if len(availableReleases) == 0 {
		s.logger.Warn("No releases found")
	} else {
		s.logger.Info(fmt.Sprintf("Found %d release(s)", len(availableReleases)))
	}
	return availableReleases, nil
}

func (s *sourceBase) getHostRuleForHost(host string) *common.HostRule {
	return common.FindHostRule(s.settings.HostRules, host)
}

func sourceIdOrType(id string, sourceType common.SourceType) string {
	if id != "" {
		return id
	}
	return string(sourceType)
}

package sources

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/roemer/fwcatalog/pkg/common"
	"github.com/roemer/fwcatalog/pkg/panos"
)

// The file name pattern used for device sources when none is configured.
const DefaultFirmwarePattern = "^PanOS_"

// A source which gets the available releases from a firewall or Panorama and exports the images with scp.
type PanosSource struct {
	*sourceBase
}

func NewPanosSource(settings *common.SourceSettings) common.ISource {
	newSource := &PanosSource{
		sourceBase: newSourceBase(common.SOURCE_TYPE_PANOS, settings),
	}
	newSource.impl = newSource
	return newSource
}

func (s *PanosSource) GetReleases(ctx context.Context) ([]*common.RawRelease, error) {
	deviceSettings := s.settings.PanosSourceSettings
	if deviceSettings == nil || deviceSettings.Device == "" {
		return nil, fmt.Errorf("no device defined for source '%s'", s.Id())
	}
	firmwarePattern := s.settings.FileNamePattern
	if firmwarePattern == "" {
		firmwarePattern = DefaultFirmwarePattern
	}
	firmwareRegex, err := regexp.Compile(firmwarePattern)
	if err != nil {
		return nil, fmt.Errorf("failed parsing the firmware regexp '%s': %w", firmwarePattern, err)
	}
	scpPath := deviceSettings.ScpPath
	if scpPath == "" {
		scpPath = "."
	}
	download := deviceSettings.Download == nil || *deviceSettings.Download
	if download && deviceSettings.ScpProfile == "" {
		return nil, fmt.Errorf("no scp profile defined for source '%s'", s.Id())
	}

	client := panos.NewClient(&panos.ClientSettings{
		Logger:   s.logger,
		Host:     deviceSettings.Device,
		ApiKey:   deviceSettings.ApiKeyExpanded(),
		Insecure: deviceSettings.Insecure != nil && *deviceSettings.Insecure,
	})

	// Detect the kind of device
	systemInfo, err := client.SystemInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed getting the system info: %w", err)
	}
	isPanorama := systemInfo.IsPanorama()
	scope := panos.SOFTWARE_SCOPE_SYSTEM
	if isPanorama {
		scope = panos.SOFTWARE_SCOPE_BATCH
		s.logger.Info("Device is a Panorama. Only firmware versions up to the Panorama's running major will be available.")
	} else {
		s.logger.Info("Device is a firewall.")
	}

	// Get the available versions
	versions, err := client.CheckSoftware(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed checking for software: %w", err)
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("no releases found on device '%s'", deviceSettings.Device)
	}
	releases := []*common.RawRelease{}
	for _, version := range versions {
		if !firmwareRegex.MatchString(version.FileName) {
			continue
		}
		s.logger.Debug(fmt.Sprintf("Version %s matched regex %s", version.FileName, firmwarePattern))
		release := &common.RawRelease{
			Platform:      systemInfo.Family,
			VersionNumber: version.Version,
			FileName:      version.FileName,
		}
		// Only Panorama reports the platform and checksum
		if isPanorama {
			release.Platform = version.Platform
			release.Sha256Checksum = version.Sha256
		}
		releases = append(releases, release)
	}
	if len(releases) == 0 {
		return nil, fmt.Errorf("no releases matched regex %s", firmwarePattern)
	}

	// Make sure the images are exported and calculate the missing checksums
	finalReleases := []*common.RawRelease{}
	for _, release := range releases {
		imagePath := filepath.Join(scpPath, release.FileName)
		exists, err := common.FileExists(imagePath)
		if err != nil {
			return nil, err
		}
		if exists {
			s.logger.Info(fmt.Sprintf("File %s for %s already on disk, not downloading", release.FileName, release.Platform))
		} else if download {
			if err := s.exportImage(ctx, client, scope, deviceSettings.ScpProfile, release); err != nil {
				return nil, err
			}
		} else if !isPanorama {
			s.logger.Warn(fmt.Sprintf("File %s is not on disk and downloading is disabled, skipping", release.FileName))
			continue
		}
		if !isPanorama {
			checksum, err := common.FileSha256(imagePath)
			if err != nil {
				return nil, err
			}
			release.Sha256Checksum = checksum
		}
		finalReleases = append(finalReleases, release)
	}
	return finalReleases, nil
}

// Downloads the image on the device, exports it with scp and removes it from the device again.
func (s *PanosSource) exportImage(ctx context.Context, client *panos.Client, scope panos.SoftwareScope, scpProfile string, release *common.RawRelease) error {
	s.logger.Info(fmt.Sprintf("Downloading version %s for %s and placing on SCP server", release.VersionNumber, release.Platform))
	var err error
	if scope == panos.SOFTWARE_SCOPE_BATCH {
		err = client.DownloadFile(ctx, release.FileName)
	} else {
		err = client.DownloadVersion(ctx, release.VersionNumber)
	}
	if err != nil {
		if !panos.IsBaseImageRequiredError(err) {
			return fmt.Errorf("failed downloading '%s': %w", release.FileName, err)
		}
		s.logger.Debug(fmt.Sprintf("Ignoring base image message for '%s'", release.FileName))
	}
	if err := client.ScpExport(ctx, scope, release.FileName, scpProfile); err != nil {
		return fmt.Errorf("failed exporting '%s': %w", release.FileName, err)
	}
	s.logger.Info(fmt.Sprintf("Exported file %s from PA device", release.FileName))
	if scope == panos.SOFTWARE_SCOPE_BATCH {
		err = client.DeleteFile(ctx, release.FileName)
	} else {
		err = client.DeleteVersion(ctx, release.VersionNumber)
	}
	if err != nil {
		if !panos.IsNotDownloadedError(err) {
			return fmt.Errorf("failed deleting '%s' from the device: %w", release.FileName, err)
		}
		return nil
	}
	s.logger.Info(fmt.Sprintf("Deleted file %s from PA device", release.FileName))
	return nil
}

package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-yaml"
	"github.com/roemer/fwcatalog/pkg/common"
	"github.com/roemer/fwcatalog/pkg/presets"
)

// The name of the config file that is searched when no path is given.
const DefaultConfigName = "fwcatalog"

// The file extensions that are probed for configs without extension, in this order.
var configExtensions = []string{".json", ".yaml", ".yml"}

// Loads the given configuration
func Load(configPath string) (*RootConfig, error) {
	if configPath == "" {
		configPath = "local:" + DefaultConfigName
	}
	if !strings.Contains(configPath, ":") || filepath.VolumeName(configPath) != "" {
		configPath = fmt.Sprintf("local:%s", configPath)
	}
	configInfo, err := newConfigInfo(configPath)
	if err != nil {
		return nil, err
	}
	config, err := loadConfig(nil, configInfo)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", configPath, err)
	}
	return config, nil
}

// Searches for a config file with one of the valid extensions. Returns an empty string if none was found.
func SearchConfigFileFromPath(filePath string) (string, error) {
	for _, ext := range configExtensions {
		candidate := filePath + ext
		if exists, err := common.FileExists(candidate); err != nil {
			return "", err
		} else if exists {
			return candidate, nil
		}
	}
	return "", nil
}

// Searches the entries for a config file with the given base name and one of the valid extensions.
func SearchConfigFileFromDirEntries(baseName string, dirEntries []fs.DirEntry) (string, bool) {
	for _, ext := range configExtensions {
		for _, dirEntry := range dirEntries {
			if !dirEntry.IsDir() && dirEntry.Name() == baseName+ext {
				return dirEntry.Name(), true
			}
		}
	}
	return "", false
}

////////////////////////////////////////////////////////////
// Internal
////////////////////////////////////////////////////////////

const (
	infoTypePreset string = "preset"
	infoTypeLocal  string = "local"
	infoTypeWeb    string = "web"
)

var httpSchemeRegex = regexp.MustCompile(`^https?://.+`)

// Holds information about the type and location of a config
type configInfo struct {
	Type     string
	Location string
}

func newConfigInfo(info string) (*configInfo, error) {
	if info == "" {
		return nil, fmt.Errorf("empty config info")
	}

	var configType, configLoc string

	if httpSchemeRegex.MatchString(info) {
		// The info is an url, so use web
		configType = infoTypeWeb
		configLoc = info
	} else {
		parts := strings.SplitN(info, ":", 2)
		if len(parts) == 1 {
			configType = infoTypePreset
			configLoc = parts[0]
		} else {
			configType = parts[0]
			configLoc = parts[1]
		}
	}
	return &configInfo{
		Type:     configType,
		Location: configLoc,
	}, nil
}

func loadConfig(parentInfo, newInfo *configInfo) (*RootConfig, error) {
	var newConfig *RootConfig
	var err error
	// Try load the config according to the type
	switch newInfo.Type {
	case infoTypePreset:
		newConfig, err = loadConfigFromEmbeddedFile(newInfo.Location)
	case infoTypeLocal:
		newConfig, err = loadConfigFromFile(parentInfo, newInfo)
	case infoTypeWeb:
		newConfig, err = loadConfigFromWeb(newInfo.Location)
	default:
		return nil, fmt.Errorf("unknown config type '%s'", newInfo.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("failed reading config '%s:%s': %w", newInfo.Type, newInfo.Location, err)
	}

	// Create a new object for the merged config with the presets
	mergedConfig := &RootConfig{}
	// Process the "Extends" presets first
	for _, presetLookupInfo := range newConfig.Extends {
		presetInfo, err := newConfigInfo(presetLookupInfo)
		if err != nil {
			return nil, err
		}
		// Read the extended preset
		extendsConfig, err := loadConfig(newInfo, presetInfo)
		if err != nil {
			return nil, err
		}
		mergedConfig.MergeWith(extendsConfig)
	}
	// Merge the original config into the merged config
	mergedConfig.MergeWith(newConfig)
	return mergedConfig, nil
}

func loadConfigFromFile(parentInfo, newInfo *configInfo) (*RootConfig, error) {
	// Build a list of paths that should be searched
	searchPaths := []string{}
	if filepath.IsAbs(newInfo.Location) {
		// For an absolute path, only use the absolute path
		searchPaths = append(searchPaths, newInfo.Location)
	} else {
		// Current folder
		searchPaths = append(searchPaths, newInfo.Location)

		// Folder of the parent config
		if parentInfo != nil && parentInfo.Type == infoTypeLocal && parentInfo.Location != "" {
			tempSearchPath := filepath.Clean(filepath.Join(filepath.Dir(parentInfo.Location), newInfo.Location))
			searchPaths = append(searchPaths, tempSearchPath)
		}

		// Current executable directory
		if executablePath, err := os.Executable(); err == nil {
			tempSearchPath := filepath.Clean(filepath.Join(filepath.Dir(executablePath), newInfo.Location))
			searchPaths = append(searchPaths, tempSearchPath)
		}
	}

	// Search thru the defined search paths
	hasExt := filepath.Ext(newInfo.Location) != ""
	finalValidConfigPath := ""
	for _, searchPath := range searchPaths {
		if hasExt {
			// We have an extension, directly search in the given path
			if exists, err := common.FileExists(searchPath); err != nil {
				return nil, err
			} else if exists {
				finalValidConfigPath = searchPath
				break
			}
		} else {
			// No extension, probe with the valid extensions
			if foundPath, err := SearchConfigFileFromPath(searchPath); err != nil {
				return nil, err
			} else if foundPath != "" {
				finalValidConfigPath = foundPath
				break
			}
		}
	}
	if finalValidConfigPath == "" {
		return nil, fmt.Errorf("file not found for '%s'", newInfo.Location)
	}

	content, err := os.ReadFile(finalValidConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed opening file '%s': %w", finalValidConfigPath, err)
	}
	config, err := parseConfig(content, filepath.Ext(finalValidConfigPath))
	if err != nil {
		return nil, fmt.Errorf("failed parsing file '%s': %w", finalValidConfigPath, err)
	}
	// Relative extends of this config are searched next to it
	newInfo.Location = finalValidConfigPath
	return config, nil
}

func loadConfigFromEmbeddedFile(configPath string) (*RootConfig, error) {
	// Adjust the path to the config as they are all in a subfolder
	configPath = path.Join(presets.ConfigsDir, configPath)

	// If there is no extension, search for a yaml or json file
	if path.Ext(configPath) == "" {
		dirEntries, err := presets.Presets.ReadDir(path.Dir(configPath))
		if err != nil {
			return nil, err
		}
		foundPath, found := SearchConfigFileFromDirEntries(path.Base(configPath), dirEntries)
		if !found {
			return nil, fmt.Errorf("could not find a config for file '%s'", configPath)
		}
		configPath = path.Join(path.Dir(configPath), foundPath)
	}

	content, err := presets.Presets.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed opening embedded file '%s': %w", configPath, err)
	}
	config, err := parseConfig(content, path.Ext(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed parsing embedded file '%s': %w", configPath, err)
	}
	return config, nil
}

func loadConfigFromWeb(urlString string) (*RootConfig, error) {
	// Check if the url is valid
	parsedUrl, err := url.Parse(urlString)
	if err != nil {
		return nil, err
	}

	// Download it
	resp, err := resty.New().SetTimeout(30 * time.Second).R().Get(urlString)
	if err != nil {
		return nil, fmt.Errorf("failed downloading config from '%s': %w", urlString, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed downloading config from '%s': %s", urlString, resp.Status())
	}

	config, err := parseConfig(resp.Body(), path.Ext(parsedUrl.Path))
	if err != nil {
		return nil, fmt.Errorf("failed parsing config from '%s': %w", urlString, err)
	}
	return config, nil
}

func parseConfig(content []byte, ext string) (*RootConfig, error) {
	config := &RootConfig{}
	if ext == ".json" {
		if err := json.Unmarshal(content, config); err != nil {
			return nil, err
		}
	} else {
		if err := yaml.Unmarshal(content, config); err != nil {
			return nil, err
		}
	}
	return config, nil
}
